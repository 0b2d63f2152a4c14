package game

import (
	"math"
	"math/rand"
)

const (
	pursuerSpeed      = 3.5  // slightly slower than the player's walk-run blend
	pursuerRadius     = 0.35 // collision radius in the XZ plane
	pursuerHeight     = 2.2  // visual height
	pursuerRandomness = 0.35 // steering deviation weight, 0 = dead-straight chase

	// Spawn placement budget: constrained attempts, then distance-only
	// attempts, then anything goes.
	spawnAttemptsFull     = 200
	spawnAttemptsDistOnly = 50

	// Minimum spawn distance from the player start, in cells.
	spawnMinDistCells = 4
)

// Pursuer is an AI-controlled entity that seeks the player every frame.
// Y stays at ground level; Height is used only by the renderer.
type Pursuer struct {
	Pos    Vec3
	Speed  float64
	Radius float64
	Height float64
}

// spawnPursuers places count pursuers on random cells. A candidate cell is
// rejected if it is the start cell, the exit cell, already taken by an
// earlier pursuer, or closer than minDist (world units) to playerStart. If
// the full constraint set cannot be satisfied within budget the distance
// constraint alone is retried, and as a last resort an unconstrained random
// cell is accepted so placement always terminates.
func spawnPursuers(m *Maze, playerStart Vec2, count int, minDist float64, rng *rand.Rand) []*Pursuer {
	pursuers := make([]*Pursuer, 0, count)
	taken := make(map[[2]int]bool, count)
	startX, startY := m.Start()
	exitX, exitY := m.Exit()

	farEnough := func(cx, cy int) bool {
		w := m.CellToWorld(cx, cy)
		dx := w.X - playerStart.X
		dz := w.Z - playerStart.Z
		return dx*dx+dz*dz >= minDist*minDist
	}

	for i := 0; i < count; i++ {
		cx, cy := -1, -1
		for attempt := 0; attempt < spawnAttemptsFull; attempt++ {
			x := rng.Intn(m.Width())
			y := rng.Intn(m.Height())
			if x == startX && y == startY {
				continue
			}
			if x == exitX && y == exitY {
				continue
			}
			if taken[[2]int{x, y}] {
				continue
			}
			if !farEnough(x, y) {
				continue
			}
			cx, cy = x, y
			break
		}
		if cx < 0 {
			for attempt := 0; attempt < spawnAttemptsDistOnly; attempt++ {
				x := rng.Intn(m.Width())
				y := rng.Intn(m.Height())
				if !farEnough(x, y) {
					continue
				}
				cx, cy = x, y
				break
			}
		}
		if cx < 0 {
			// Give up on constraints rather than loop forever on tiny mazes.
			cx = rng.Intn(m.Width())
			cy = rng.Intn(m.Height())
		}

		taken[[2]int{cx, cy}] = true
		w := m.CellToWorld(cx, cy)
		pursuers = append(pursuers, &Pursuer{
			Pos:    Vec3{X: w.X, Z: w.Z},
			Speed:  pursuerSpeed,
			Radius: pursuerRadius,
			Height: pursuerHeight,
		})
	}
	return pursuers
}

// Steer moves the pursuer toward the player for one frame. The straight seek
// direction is perturbed by a random rotation bounded by the randomness
// factor, blended back toward the straight direction by the same factor, and
// the result is resolved with the shared slide-move rule. No pathfinding:
// pursuers feel their way along walls like the player does.
func (p *Pursuer) Steer(player Vec2, randomness, dt float64, walls []WallSegment, rng *rand.Rand) {
	dir, _, ok := normalize2(Vec2{player.X - p.Pos.X, player.Z - p.Pos.Z})
	if !ok {
		return
	}

	angle := rng.Float64() * 2 * math.Pi * randomness
	sin, cos := math.Sincos(angle)
	perturbed := Vec2{
		X: dir.X*cos - dir.Z*sin,
		Z: dir.X*sin + dir.Z*cos,
	}
	blended := Vec2{
		X: dir.X*(1-randomness) + perturbed.X*randomness,
		Z: dir.Z*(1-randomness) + perturbed.Z*randomness,
	}
	blended, _, ok = normalize2(blended)
	if !ok {
		blended = dir
	}

	step := Vec2{blended.X * p.Speed * dt, blended.Z * p.Speed * dt}
	moved := slideMove(p.Pos.XZ(), step, p.Radius, walls)
	p.Pos.X = moved.X
	p.Pos.Z = moved.Z
}

// Caught reports whether the pursuer's collision circle touches the player's.
func (p *Pursuer) Caught(player Vec2, playerRadius float64) bool {
	return circleCircleIntersect(player, playerRadius, p.Pos.XZ(), p.Radius)
}
