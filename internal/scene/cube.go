package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/world"
)

// Cube builds a 2x2x2 box of eight particles held rigid by eighteen
// rods: twelve edges plus six face diagonals. Dropped onto a ground
// plane under gravity, it should land and keep its shape.
func Cube(p Params) *Scene {
	p = p.withDefaults()

	positions := []mgl64.Vec3{
		{0, 2, -1}, {0, 2, -3}, {2, 2, -3}, {2, 2, -1},
		{0, 4, -1}, {0, 4, -3}, {2, 4, -3}, {2, 4, -1},
	}

	w := world.New(p.MaxContacts, p.Iterations)
	gravity := force.NewGravity(mgl64.Vec3{0, p.GravityY, 0})

	particles := make([]*particle.Particle, len(positions))
	for i, pos := range positions {
		pt := particle.New(p.Mass)
		pt.Position = pos
		pt.SetDamping(p.Damping)
		particles[i] = pt
		w.AddParticle(pt)
		w.ForceRegistry().Add(pt, gravity)
	}

	edge := 2.0
	diagonal := math.Sqrt(8)

	rods := []struct {
		a, b   int
		length float64
	}{
		// Bottom and top rings.
		{0, 1, edge}, {1, 2, edge}, {2, 3, edge}, {3, 0, edge},
		{4, 5, edge}, {5, 6, edge}, {6, 7, edge}, {7, 4, edge},
		// Verticals.
		{0, 4, edge}, {1, 5, edge}, {2, 6, edge}, {3, 7, edge},
		// One diagonal per face keeps the box from shearing.
		{0, 2, diagonal}, {4, 6, diagonal}, {0, 7, diagonal},
		{1, 6, diagonal}, {0, 5, diagonal}, {3, 6, diagonal},
	}

	segments := make([][2]int, 0, len(rods))
	for _, r := range rods {
		w.AddContactGenerator(contact.NewRod(particles[r.a], particles[r.b], r.length))
		segments = append(segments, [2]int{r.a, r.b})
	}

	w.AddContactGenerator(NewGroundPlane(particles, 0, 0.2))

	return &Scene{Name: "cube", World: w, Segments: segments}
}
