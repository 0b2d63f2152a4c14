package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpawnPursuers_RespectsConstraints(t *testing.T) {
	m := newTestMaze(t, 15, 15, 1)
	rng := rand.New(rand.NewSource(1))
	start := m.CellToWorld(0, 0)
	minDist := float64(spawnMinDistCells) * m.CellSize()

	ps := spawnPursuers(m, start, 3, minDist, rng)
	if len(ps) != 3 {
		t.Fatalf("expected 3 pursuers, got %d", len(ps))
	}

	seen := make(map[[2]int]bool)
	for i, p := range ps {
		cx, cy := m.WorldToCell(p.Pos.X, p.Pos.Z)
		if cx == 0 && cy == 0 {
			t.Fatalf("pursuer %d spawned on the start cell", i)
		}
		if m.IsExit(cx, cy) {
			t.Fatalf("pursuer %d spawned on the exit cell", i)
		}
		if seen[[2]int{cx, cy}] {
			t.Fatalf("pursuer %d shares cell (%d,%d) with an earlier pursuer", i, cx, cy)
		}
		seen[[2]int{cx, cy}] = true

		dx := p.Pos.X - start.X
		dz := p.Pos.Z - start.Z
		if d := math.Sqrt(dx*dx + dz*dz); d < minDist {
			t.Fatalf("pursuer %d spawned %.2f world units from start, want >= %.2f", i, d, minDist)
		}
	}
}

func TestSpawnPursuers_TinyMazeFallback(t *testing.T) {
	// Two cells, three pursuers, impossible distance constraint: the
	// unconstrained fallback must still place all of them.
	m := newTestMaze(t, 1, 2, 1)
	rng := rand.New(rand.NewSource(2))
	ps := spawnPursuers(m, m.CellToWorld(0, 0), 3, 1000, rng)
	if len(ps) != 3 {
		t.Fatalf("expected fallback to place 3 pursuers, got %d", len(ps))
	}
}

func TestSpawnPursuers_Deterministic(t *testing.T) {
	m := newTestMaze(t, 12, 12, 6)
	a := spawnPursuers(m, m.CellToWorld(0, 0), 3, 6.0, rand.New(rand.NewSource(33)))
	b := spawnPursuers(m, m.CellToWorld(0, 0), 3, 6.0, rand.New(rand.NewSource(33)))
	for i := range a {
		if a[i].Pos != b[i].Pos {
			t.Fatalf("pursuer %d spawn differs between identical seeds: %v vs %v", i, a[i].Pos, b[i].Pos)
		}
	}
}

func TestSteer_ZeroRandomnessSeeksStraight(t *testing.T) {
	p := &Pursuer{Pos: Vec3{X: 0, Z: 0}, Speed: 3.5, Radius: 0.35}
	rng := rand.New(rand.NewSource(1))
	player := Vec2{X: 10, Z: 0}
	dt := 1.0 / 60.0

	p.Steer(player, 0, dt, nil, rng)
	wantX := 3.5 * dt
	if math.Abs(p.Pos.X-wantX) > 1e-9 || math.Abs(p.Pos.Z) > 1e-9 {
		t.Fatalf("zero-randomness steer should move straight at the player, got (%g, %g)", p.Pos.X, p.Pos.Z)
	}
}

func TestSteer_ClosesDistance(t *testing.T) {
	p := &Pursuer{Pos: Vec3{X: -5, Z: -5}, Speed: 3.5, Radius: 0.35}
	rng := rand.New(rand.NewSource(4))
	player := Vec2{X: 5, Z: 5}
	dt := 1.0 / 60.0

	before := math.Hypot(player.X-p.Pos.X, player.Z-p.Pos.Z)
	for i := 0; i < 120; i++ {
		p.Steer(player, pursuerRandomness, dt, nil, rng)
	}
	after := math.Hypot(player.X-p.Pos.X, player.Z-p.Pos.Z)
	if after >= before {
		t.Fatalf("pursuer should close on the player over time: %.2f -> %.2f", before, after)
	}
}

func TestSteer_AtPlayerPositionStaysPut(t *testing.T) {
	p := &Pursuer{Pos: Vec3{X: 2, Z: 3}, Speed: 3.5, Radius: 0.35}
	rng := rand.New(rand.NewSource(1))
	p.Steer(Vec2{X: 2, Z: 3}, pursuerRandomness, 1.0/60.0, nil, rng)
	if p.Pos.X != 2 || p.Pos.Z != 3 {
		t.Fatalf("steer with zero seek vector should not move, got (%g, %g)", p.Pos.X, p.Pos.Z)
	}
}

func TestCaught(t *testing.T) {
	p := &Pursuer{Pos: Vec3{X: 0, Z: 0}, Radius: 0.35}
	if !p.Caught(Vec2{X: 0.5, Z: 0}, 0.30) {
		t.Fatal("overlapping circles should count as caught")
	}
	if p.Caught(Vec2{X: 1.0, Z: 0}, 0.30) {
		t.Fatal("separated circles should not count as caught")
	}
}
