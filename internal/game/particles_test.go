package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestParticleSystem_PoolNeverExceedsCapacity(t *testing.T) {
	ps := NewParticleSystem(5)
	rng := rand.New(rand.NewSource(1))
	emitter := Vec3{X: 1, Y: 2, Z: 3}
	dt := 1.0 / 60.0
	for frame := 0; frame < 600; frame++ {
		ps.Update(emitter, dt, rng)
		if ps.ActiveCount() > ps.Capacity() {
			t.Fatalf("frame %d: %d active exceeds capacity %d", frame, ps.ActiveCount(), ps.Capacity())
		}
	}
	if ps.ActiveCount() == 0 {
		t.Fatal("expected some live particles after sustained emission")
	}
}

func TestParticleSystem_EmissionRateConverges(t *testing.T) {
	ps := NewParticleSystem(1000)
	rng := rand.New(rand.NewSource(2))
	emitter := Vec3{}

	// 240 frames at exactly 1/60s: the accumulator gains 0.25 per frame, so
	// one particle every fourth frame, 60 in total.
	for frame := 0; frame < 240; frame++ {
		ps.Update(emitter, 1.0/60.0, rng)
	}
	if ps.Emitted() != 60 {
		t.Fatalf("expected 60 particles after 4 seconds at 60fps, got %d", ps.Emitted())
	}
}

func TestParticleSystem_EmissionSurvivesFrameJitter(t *testing.T) {
	ps := NewParticleSystem(1000)
	rng := rand.New(rand.NewSource(3))
	jitter := rand.New(rand.NewSource(99))
	emitter := Vec3{}

	total := 0.0
	for total < 10.0 {
		dt := 0.008 + jitter.Float64()*0.03
		ps.Update(emitter, dt, rng)
		total += dt
	}
	want := flameEmitRate * total
	if diff := math.Abs(float64(ps.Emitted()) - want); diff > 2 {
		t.Fatalf("after %.2fs of jittered frames expected ~%.0f particles, got %d", total, want, ps.Emitted())
	}
}

func TestParticleSystem_DeadParticlesRemoved(t *testing.T) {
	ps := NewParticleSystem(4)
	ps.particles[0] = Particle{Life: 0.01}
	ps.particles[1] = Particle{Life: 5.0}
	ps.active = 2
	rng := rand.New(rand.NewSource(4))

	// dt large enough to kill the first particle, small enough that the
	// accumulator emits nothing.
	ps.Update(Vec3{}, 0.02, rng)
	if ps.ActiveCount() != 1 {
		t.Fatalf("expected 1 live particle after expiry, got %d", ps.ActiveCount())
	}
	if got := ps.Active()[0].Life; math.Abs(got-4.98) > 1e-9 {
		t.Fatalf("survivor should be the long-lived particle, got life %g", got)
	}
}

func TestParticleSystem_SpawnAttributes(t *testing.T) {
	ps := NewParticleSystem(50)
	rng := rand.New(rand.NewSource(5))
	emitter := Vec3{X: 2, Y: 1, Z: -3}

	// One big step to force a burst of emissions.
	ps.Update(emitter, 0.5, rng)
	if ps.ActiveCount() == 0 {
		t.Fatal("expected particles after a half-second step")
	}
	for i, p := range ps.Active() {
		if p.MaxLife < 0.5 || p.MaxLife > 1.0 {
			t.Fatalf("particle %d MaxLife %g outside [0.5, 1.0]", i, p.MaxLife)
		}
		if p.Size < 0.05 || p.Size > 0.08 {
			t.Fatalf("particle %d Size %g outside [0.05, 0.08]", i, p.Size)
		}
		if p.Color.R != 255 || p.Color.B != 0 {
			t.Fatalf("particle %d colour %v should be in the flame palette", i, p.Color)
		}
	}
}

func TestParticleSystem_GravityPullsVelocityDown(t *testing.T) {
	ps := NewParticleSystem(8)
	ps.particles[0] = Particle{Life: 10, Vel: Vec3{Y: 1.0}}
	ps.active = 1
	rng := rand.New(rand.NewSource(6))

	ps.Update(Vec3{}, 0.05, rng)
	got := ps.Active()[0].Vel.Y
	if math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("expected Vel.Y 0.9 after gravity step, got %g", got)
	}
}

func TestNewParticleSystem_NegativeCapacity(t *testing.T) {
	ps := NewParticleSystem(-3)
	if ps.Capacity() != 0 {
		t.Fatalf("negative capacity should clamp to 0, got %d", ps.Capacity())
	}
	ps.Update(Vec3{}, 1.0, rand.New(rand.NewSource(7)))
	if ps.ActiveCount() != 0 || ps.Emitted() != 0 {
		t.Fatal("zero-capacity pool should never emit")
	}
}
