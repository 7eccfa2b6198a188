package force

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/particle"
)

// Gravity applies a constant acceleration as a force, scaled by mass so
// all particles fall at the same rate. One instance can serve any number
// of particles.
type Gravity struct {
	gravity mgl64.Vec3
}

func NewGravity(gravity mgl64.Vec3) *Gravity {
	return &Gravity{gravity: gravity}
}

func (g *Gravity) UpdateForce(p *particle.Particle, duration float64) {
	if !p.HasFiniteMass() {
		return
	}
	p.AddForce(g.gravity.Mul(p.Mass()))
}

// MinAttractorDistance guards the point-gravity singularity: inside this
// radius the attractor captures the particle instead of dividing by a
// vanishing distance.
const MinAttractorDistance = 0.5

// PointGravity attracts particles toward a fixed point with an
// inverse-power falloff of distance^1.5 rather than inverse-square,
// which keeps distant particles orbiting visibly.
type PointGravity struct {
	scalar float64
	point  mgl64.Vec3
}

func NewPointGravity(scalar float64, point mgl64.Vec3) *PointGravity {
	return &PointGravity{scalar: scalar, point: point}
}

// UpdateForce attracts p toward the gravity point. Within
// MinAttractorDistance it zeroes the particle's velocity and applies no
// force: the captured particle parks instead of accelerating without
// bound.
func (g *PointGravity) UpdateForce(p *particle.Particle, duration float64) {
	if !p.HasFiniteMass() {
		return
	}

	toPoint := g.point.Sub(p.Position)
	dist := toPoint.Len()
	if dist < MinAttractorDistance {
		p.Velocity = mgl64.Vec3{}
		return
	}

	magnitude := g.scalar * p.Mass() / math.Pow(dist, 1.5)
	p.AddForce(toPoint.Mul(magnitude / dist))
}

// Uplift levitates particles to a target height. Below maxHeight it
// applies a constant uplift force scaled by mass; at or above it, it
// zeroes the particle's velocity and cancels the paired gravity
// generator exactly, locking the particle in place.
type Uplift struct {
	uplift    mgl64.Vec3
	maxHeight float64
	gravity   *Gravity
}

func NewUplift(uplift mgl64.Vec3, maxHeight float64, gravity *Gravity) *Uplift {
	return &Uplift{uplift: uplift, maxHeight: maxHeight, gravity: gravity}
}

func (u *Uplift) UpdateForce(p *particle.Particle, duration float64) {
	if !p.HasFiniteMass() {
		return
	}

	if p.Position.Y() < u.maxHeight {
		p.AddForce(u.uplift.Mul(p.Mass()))
		return
	}

	p.Velocity = mgl64.Vec3{}
	p.AddForce(u.gravity.gravity.Mul(-p.Mass()))
}
