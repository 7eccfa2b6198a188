package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/world"
)

// Trebuchet builds a pyramid frame with a rigid arm balanced over its
// apex. A heavy counterweight hangs from the short end by a cable and
// the projectile hangs from the long end; releasing the machine is just
// letting gravity run.
func Trebuchet(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)
	gravity := force.NewGravity(mgl64.Vec3{0, p.GravityY, 0})

	var particles []*particle.Particle
	add := func(pos mgl64.Vec3, mass float64) int {
		var pt *particle.Particle
		if mass == 0 {
			pt = particle.NewImmovable()
		} else {
			pt = particle.New(mass)
			pt.SetDamping(p.Damping)
			w.ForceRegistry().Add(pt, gravity)
		}
		pt.Position = pos
		particles = append(particles, pt)
		w.AddParticle(pt)
		return len(particles) - 1
	}

	// Immovable base corners anchoring the frame.
	b0 := add(mgl64.Vec3{0, 0, 0}, 0)
	b1 := add(mgl64.Vec3{0, 0, -4}, 0)
	b2 := add(mgl64.Vec3{6, 0, -4}, 0)
	b3 := add(mgl64.Vec3{6, 0, 0}, 0)

	// Axle at the apex of the pyramid.
	axle := add(mgl64.Vec3{3, 4, -2}, p.Mass)

	// The arm pivots over the axle: a short end for the counterweight
	// and a long end for the projectile, braced into a rigid triangle.
	short := add(mgl64.Vec3{1, 4, -2}, p.Mass)
	long := add(mgl64.Vec3{7, 4, -2}, p.Mass)

	counterweight := add(mgl64.Vec3{1, 2, -2}, p.Mass*8)
	projectile := add(mgl64.Vec3{7, 2, -2}, p.Mass/5)

	var segments [][2]int
	rod := func(a, b int) {
		length := particles[a].Position.Sub(particles[b].Position).Len()
		w.AddContactGenerator(contact.NewRod(particles[a], particles[b], length))
		segments = append(segments, [2]int{a, b})
	}
	cable := func(a, b int) {
		length := particles[a].Position.Sub(particles[b].Position).Len()
		w.AddContactGenerator(contact.NewCable(particles[a], particles[b], length, 0.1))
		segments = append(segments, [2]int{a, b})
	}

	// Frame: apex braced to every base corner.
	rod(b0, axle)
	rod(b1, axle)
	rod(b2, axle)
	rod(b3, axle)

	// Rigid arm.
	rod(short, axle)
	rod(axle, long)
	rod(short, long)

	// Payloads swing on cables.
	cable(short, counterweight)
	cable(long, projectile)

	return &Scene{Name: "trebuchet", World: w, Segments: segments}
}
