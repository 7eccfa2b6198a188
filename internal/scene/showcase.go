package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/world"
)

// PointGrav drops a ring of particles toward a central attractor with
// an inverse-power falloff. Particles that reach the capture radius
// park there instead of slingshotting.
func PointGrav(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)
	attractor := force.NewPointGravity(40.0, mgl64.Vec3{})

	for _, x := range []float64{2.5, 5, 7.5, 10, -2.5, -5, -7.5, -10} {
		for _, axis := range []mgl64.Vec3{{1, 0, 0}, {0, 0, 1}} {
			pt := particle.New(p.Mass)
			pt.Position = axis.Mul(x)
			pt.SetDamping(p.Damping)
			w.AddParticle(pt)
			w.ForceRegistry().Add(pt, attractor)
		}
	}

	return &Scene{Name: "pointgrav", World: w}
}

// Uplift pairs every particle with a gravity and an uplift generator:
// below the lock height the uplift wins and carries the particle up,
// at the lock height the two cancel exactly and the particle levitates.
func Uplift(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)
	gravity := force.NewGravity(mgl64.Vec3{0, p.GravityY, 0})
	uplift := force.NewUplift(mgl64.Vec3{0, 20, 0}, 10.0, gravity)

	for _, x := range []float64{2.5, 5, 7.5, 10, -2.5, -5, -7.5, -10} {
		for _, z := range []float64{0, 2.5, -2.5} {
			pt := particle.New(p.Mass)
			pt.Position = mgl64.Vec3{x, 0, z}
			pt.SetDamping(p.Damping)
			w.AddParticle(pt)
			w.ForceRegistry().Add(pt, gravity)
			w.ForceRegistry().Add(pt, uplift)
		}
	}

	return &Scene{Name: "uplift", World: w}
}

// Damping drops identical columns of particles that differ only in
// damping factor, making the frame-rate-independent decay visible side
// by side.
func Damping(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)

	dampings := []float64{1.0, 0.99, 0.9, 0.7, 0.5}
	for col, damping := range dampings {
		for row := 0; row < 4; row++ {
			pt := particle.New(25.0)
			pt.Position = mgl64.Vec3{float64(col) * 2, float64(row+1) * 10, 0}
			// Constant gravity bias through the acceleration field,
			// the way the integrator expects frame-constant forces.
			pt.Acceleration = mgl64.Vec3{0, p.GravityY, 0}
			pt.SetDamping(damping)
			w.AddParticle(pt)
		}
	}

	return &Scene{Name: "damping", World: w}
}

// Lighter floats buoyant particles on a water line at y=0 while twin
// control particles sink past it under plain gravity.
func Lighter(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)
	gravity := force.NewGravity(mgl64.Vec3{0, p.GravityY, 0})
	buoyancy := force.NewBuoyancy(1.5, 1.0, 0, 120.0)

	for i := 0; i < 6; i++ {
		x := float64(i)*2.5 - 6.25

		floater := particle.New(p.Mass)
		floater.Position = mgl64.Vec3{x, 4, 0}
		floater.SetDamping(0.9)
		w.AddParticle(floater)
		w.ForceRegistry().Add(floater, gravity)
		w.ForceRegistry().Add(floater, buoyancy)

		sinker := particle.New(p.Mass)
		sinker.Position = mgl64.Vec3{x, 4, 4}
		sinker.SetDamping(0.9)
		w.AddParticle(sinker)
		w.ForceRegistry().Add(sinker, gravity)
	}

	return &Scene{Name: "lighter", World: w}
}
