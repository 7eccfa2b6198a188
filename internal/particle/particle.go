package particle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a point mass: position and velocity but no orientation.
// Kinematic state is exported so scenes and hosts can initialize and read
// it directly; mass and damping go through accessors because they carry
// invariants (inverse mass is never negative, damping stays in (0, 1]).
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	// Acceleration is the constant per-frame bias, typically gravity.
	// Transient forces go through AddForce instead.
	Acceleration mgl64.Vec3

	inverseMass float64
	damping     float64
	forceAccum  mgl64.Vec3
}

// New returns a particle with the given finite mass and no damping
// (damping factor 1).
func New(mass float64) *Particle {
	p := &Particle{damping: 1}
	p.SetMass(mass)
	return p
}

// NewImmovable returns an infinite-mass particle. It never moves under
// integration or impulses.
func NewImmovable() *Particle {
	return &Particle{damping: 1}
}

// Integrate advances the particle by duration seconds using semi-implicit
// Euler. Infinite-mass particles and non-positive durations are no-ops.
func (p *Particle) Integrate(duration float64) {
	if duration <= 0 || p.inverseMass <= 0 {
		return
	}

	p.Position = p.Position.Add(p.Velocity.Mul(duration))

	acc := p.Acceleration.Add(p.forceAccum.Mul(p.inverseMass))
	p.Velocity = p.Velocity.Add(acc.Mul(duration))

	// Fractional exponent keeps the decay frame-rate independent; a
	// linear approximation would damp harder at smaller timesteps.
	p.Velocity = p.Velocity.Mul(math.Pow(p.damping, duration))

	p.ClearForces()
}

// SetMass sets a finite mass. Zero or negative mass is physically
// meaningless for a finite-mass particle; use SetInverseMass(0) for an
// immovable one.
func (p *Particle) SetMass(mass float64) {
	if mass <= 0 {
		panic("particle: mass must be positive, use SetInverseMass(0) for infinite mass")
	}
	p.inverseMass = 1 / mass
}

// Mass returns the particle mass, or +Inf for an immovable particle.
func (p *Particle) Mass() float64 {
	if p.inverseMass == 0 {
		return math.Inf(1)
	}
	return 1 / p.inverseMass
}

// SetInverseMass sets the inverse mass directly. Zero denotes infinite
// mass.
func (p *Particle) SetInverseMass(inverseMass float64) {
	if inverseMass < 0 {
		panic("particle: inverse mass must not be negative")
	}
	p.inverseMass = inverseMass
}

func (p *Particle) InverseMass() float64 { return p.inverseMass }

// HasFiniteMass reports whether the particle responds to forces and
// impulses.
func (p *Particle) HasFiniteMass() bool { return p.inverseMass != 0 }

// SetDamping sets the velocity decay factor, applied as damping^duration
// each integration step. Must be in (0, 1].
func (p *Particle) SetDamping(damping float64) {
	if damping <= 0 || damping > 1 {
		panic("particle: damping must be in (0, 1]")
	}
	p.damping = damping
}

func (p *Particle) Damping() float64 { return p.damping }

// AddForce accumulates a force to be applied at the next integration
// step only.
func (p *Particle) AddForce(force mgl64.Vec3) {
	p.forceAccum = p.forceAccum.Add(force)
}

// ClearForces zeroes the accumulator. Called automatically after each
// integration step and at the start of every world frame.
func (p *Particle) ClearForces() {
	p.forceAccum = mgl64.Vec3{}
}

// ForceAccum returns the force accumulated so far this frame.
func (p *Particle) ForceAccum() mgl64.Vec3 { return p.forceAccum }
