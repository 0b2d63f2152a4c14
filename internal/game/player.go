package game

import "math"

const (
	playerRadius    = 0.30
	playerEyeHeight = 1.80
	playerGravity   = -18.0
	playerJumpSpeed = 6.5
	playerMoveSpeed = 5.0
	runMultiplier   = 1.8

	wallHeight = 4.0 // corridor height; also the renderer's wall height

	pitchLimit = 89.0 * math.Pi / 180.0
)

// Player holds the first-person avatar state. Pos.Y is the feet height; the
// camera sits playerEyeHeight above it.
type Player struct {
	Pos      Vec3
	VelY     float64
	Yaw      float64 // 0 = looking toward +Z
	Pitch    float64
	OnGround bool
}

// ApplyLook rotates the view by a mouse delta, clamping pitch short of
// straight up/down.
func (p *Player) ApplyLook(dx, dy float64) {
	p.Yaw -= dx
	p.Pitch -= dy
	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

// Forward returns the view direction.
func (p *Player) Forward() Vec3 {
	return Vec3{
		X: math.Cos(p.Pitch) * math.Sin(p.Yaw),
		Y: math.Sin(p.Pitch),
		Z: math.Cos(p.Pitch) * math.Cos(p.Yaw),
	}
}

// Right returns the horizontal right-hand direction.
func (p *Player) Right() Vec3 {
	return Vec3{X: math.Cos(p.Yaw), Z: -math.Sin(p.Yaw)}
}

// Move applies one frame of walking. forward/strafe are the input intent in
// view-relative units; the combined wish direction is normalized so diagonal
// movement is no faster. Horizontal displacement resolves against the walls
// with the shared slide rule.
func (p *Player) Move(forward, strafe float64, run bool, dt float64, walls []WallSegment) {
	speed := playerMoveSpeed
	if run {
		speed *= runMultiplier
	}

	f := p.Forward()
	r := p.Right()
	wish := Vec2{
		X: f.X*forward - r.X*strafe,
		Z: f.Z*forward - r.Z*strafe,
	}
	if dir, _, ok := normalize2(wish); ok {
		step := Vec2{dir.X * speed * dt, dir.Z * speed * dt}
		moved := slideMove(p.Pos.XZ(), step, playerRadius, walls)
		p.Pos.X = moved.X
		p.Pos.Z = moved.Z
	}
}

// Fall applies one frame of jumping and gravity. jump is an edge-triggered
// action event; it only fires while on the ground. The feet are clamped so
// the eye never pokes through the ceiling.
func (p *Player) Fall(jump bool, dt float64) {
	p.OnGround = p.Pos.Y <= 1e-4
	if p.OnGround {
		p.Pos.Y = 0
		p.VelY = 0
		if jump {
			p.VelY = playerJumpSpeed
			p.OnGround = false
		}
	} else {
		p.VelY += playerGravity * dt
	}
	p.Pos.Y += p.VelY * dt

	maxFeetY := wallHeight - playerEyeHeight
	if p.Pos.Y > maxFeetY {
		p.Pos.Y = maxFeetY
		if p.VelY > 0 {
			p.VelY = 0
		}
	}
}

// EyePos returns the camera position.
func (p *Player) EyePos() Vec3 {
	return Vec3{X: p.Pos.X, Y: p.Pos.Y + playerEyeHeight, Z: p.Pos.Z}
}
