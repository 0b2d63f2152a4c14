package game

import (
	"math"
	"math/rand"
)

const (
	maxTorches       = 25   // hard cap; sparse lighting keeps the maze dark
	torchChance      = 0.08 // fraction of wall faces that receive a torch
	torchMountHeight = 2.0  // height on the wall
	torchWallOffset  = 0.11 // stand-off from the wall surface
)

// Torch is a wall-mounted flame emitter. Normal points away from the wall
// face into the corridor and is used by the renderer to orient the flame.
type Torch struct {
	Pos    Vec3
	Normal Vec3

	flickerTime   float64
	baseIntensity float64
}

// placeTorches scatters torches over a small random fraction of wall faces.
// Every walled face of every cell is a candidate (shared walls contribute a
// face to each adjacent cell), each accepted with torchChance up to
// maxTorches.
func placeTorches(m *Maze, rng *rand.Rand) []*Torch {
	type face struct {
		pos    Vec2 // wall face centre in XZ
		normal Vec3
		alongX bool // torch offset runs along X for N/S faces, Z for W/E
	}

	half := m.CellSize() * 0.5
	var faces []face
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.CellToWorld(x, y)
			if m.HasWall(x, y, WallNorth) {
				faces = append(faces, face{Vec2{c.X, c.Z - half}, Vec3{0, 0, 1}, true})
			}
			if m.HasWall(x, y, WallSouth) {
				faces = append(faces, face{Vec2{c.X, c.Z + half}, Vec3{0, 0, -1}, true})
			}
			if m.HasWall(x, y, WallWest) {
				faces = append(faces, face{Vec2{c.X - half, c.Z}, Vec3{1, 0, 0}, false})
			}
			if m.HasWall(x, y, WallEast) {
				faces = append(faces, face{Vec2{c.X + half, c.Z}, Vec3{-1, 0, 0}, false})
			}
		}
	}

	torches := make([]*Torch, 0, maxTorches)
	for _, f := range faces {
		if len(torches) >= maxTorches {
			break
		}
		if rng.Float64() >= torchChance {
			continue
		}

		// Random position along the wall, kept away from the corners.
		along := rng.Float64()*(m.CellSize()-0.5) + 0.25
		pos := Vec3{Y: torchMountHeight}
		if f.alongX {
			pos.X = f.pos.X - half + along
			pos.Z = f.pos.Z + f.normal.Z*torchWallOffset
		} else {
			pos.X = f.pos.X + f.normal.X*torchWallOffset
			pos.Z = f.pos.Z - half + along
		}

		torches = append(torches, &Torch{
			Pos:           pos,
			Normal:        f.normal,
			flickerTime:   rng.Float64() * 2 * math.Pi,
			baseIntensity: 0.6 + rng.Float64()*0.3,
		})
	}
	return torches
}

// Update advances the flicker phase. The phase speed itself oscillates so the
// flicker never settles into a visible rhythm.
func (t *Torch) Update(dt float64) {
	speed := 6.0 + 4.0*math.Sin(t.flickerTime*0.5)
	t.flickerTime += dt * speed
	if t.flickerTime > 2*math.Pi {
		t.flickerTime -= 2 * math.Pi
	}
}

// Intensity returns the current light intensity: three stacked sine bands
// plus an occasional sudden dip.
func (t *Torch) Intensity() float64 {
	flicker := 0.5 + 0.4*math.Sin(t.flickerTime) +
		0.15*math.Sin(t.flickerTime*3.5) +
		0.1*math.Sin(t.flickerTime*7.0)
	if int(t.flickerTime*10)%23 == 0 {
		flicker *= 0.3
	}
	return t.baseIntensity * flicker
}

// EmitterPos returns the point where flame particles spawn, slightly above
// the torch head.
func (t *Torch) EmitterPos() Vec3 {
	p := t.Pos
	p.Y += flameEmitOffset
	return p
}
