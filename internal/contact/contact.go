package contact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/particle"
)

// Contact records a pairwise constraint violation between two particles,
// or between one particle and immovable scenery when Particles[1] is
// nil. Contacts are plain data: the Resolver owns all mutation during
// resolution. They live in a buffer the world reuses every frame and are
// stale once the next generation pass runs.
type Contact struct {
	// Particles holds the participants. The second entry may be nil
	// for contacts with scenery. Both references are non-owning.
	Particles [2]*particle.Particle

	// Normal is the contact direction in world space, unit length,
	// pointing in the direction particle 0 separates.
	Normal mgl64.Vec3

	// Restitution is the bounciness kept after resolution, in [0, 1].
	Restitution float64

	// Penetration is the interpenetration depth, >= 0.
	Penetration float64

	// Movement is written during interpenetration resolution: how far
	// each participant was moved. Output only.
	Movement [2]mgl64.Vec3
}

// SeparatingVelocity returns the relative velocity projected onto the
// contact normal. Negative means the participants are closing.
func (c *Contact) SeparatingVelocity() float64 {
	rel := c.Particles[0].Velocity
	if c.Particles[1] != nil {
		rel = rel.Sub(c.Particles[1].Velocity)
	}
	return rel.Dot(c.Normal)
}

func (c *Contact) totalInverseMass() float64 {
	total := c.Particles[0].InverseMass()
	if c.Particles[1] != nil {
		total += c.Particles[1].InverseMass()
	}
	return total
}

// Generator inspects particle state and emits contacts into buf, at most
// len(buf) of them, returning how many were written. A full buffer
// (len(buf) == 0) must produce 0.
type Generator interface {
	AddContacts(buf []Contact) int
}
