package game

import (
	"image/color"
	"math/rand"
)

const (
	flameEmitRate   = 15.0  // particles per second per torch
	flameGravity    = -2.0  // downward acceleration on particle velocity
	flameEmitOffset = 0.25  // spawn height above the emitter point
)

// Particle is one flame mote. Size and colour are rendering attributes only.
type Particle struct {
	Pos     Vec3
	Vel     Vec3
	Life    float64 // seconds remaining
	MaxLife float64
	Size    float64
	Color   color.RGBA
}

// ParticleSystem simulates flame particles for a single emitter out of a
// fixed-capacity pool. The pool never grows; when it is full, emission waits
// for particles to die.
type ParticleSystem struct {
	particles []Particle // backing pool, len == cap
	active    int        // particles[:active] are alive
	emitAccum float64    // fractional emission carry-over
	emitted   int        // total particles spawned over the system's lifetime
}

// NewParticleSystem creates a pool with room for maxParticles live particles.
func NewParticleSystem(maxParticles int) *ParticleSystem {
	if maxParticles < 0 {
		maxParticles = 0
	}
	return &ParticleSystem{particles: make([]Particle, maxParticles)}
}

// ActiveCount returns the number of live particles.
func (ps *ParticleSystem) ActiveCount() int { return ps.active }

// Capacity returns the pool size.
func (ps *ParticleSystem) Capacity() int { return len(ps.particles) }

// Emitted returns the total number of particles spawned so far.
func (ps *ParticleSystem) Emitted() int { return ps.emitted }

// Active returns the live particles. The slice aliases the pool and is only
// valid until the next Update.
func (ps *ParticleSystem) Active() []Particle { return ps.particles[:ps.active] }

// Update emits new particles at emitter and advances the pool by dt.
//
// Emission uses a fractional accumulator so the long-run rate converges to
// flameEmitRate regardless of frame-time jitter. Dead particles are removed
// by swapping with the last live slot; order is not preserved, which is fine
// since flame motes are visually interchangeable.
func (ps *ParticleSystem) Update(emitter Vec3, dt float64, rng *rand.Rand) {
	ps.emitAccum += flameEmitRate * dt
	toEmit := int(ps.emitAccum)
	ps.emitAccum -= float64(toEmit)

	for i := 0; i < toEmit && ps.active < len(ps.particles); i++ {
		p := &ps.particles[ps.active]
		p.Pos = emitter
		p.Pos.Y += flameEmitOffset
		p.Vel = Vec3{
			X: (rng.Float64()*0.4 - 0.2),
			Y: (rng.Float64()*0.4 + 0.2),
			Z: (rng.Float64()*0.4 - 0.2),
		}
		p.Life = 1.0
		p.MaxLife = 0.5 + rng.Float64()*0.5
		p.Size = 0.05 + rng.Float64()*0.03
		p.Color = color.RGBA{R: 255, G: uint8(150 + rng.Intn(50)), B: 0, A: 255}
		ps.active++
		ps.emitted++
	}

	for i := 0; i < ps.active; i++ {
		p := &ps.particles[i]
		p.Vel.Y += flameGravity * dt
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Pos.Z += p.Vel.Z * dt
		p.Life -= dt

		if p.Life <= 0 {
			ps.particles[i] = ps.particles[ps.active-1]
			ps.active--
			i--
		}
	}
}
