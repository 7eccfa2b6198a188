// Package scene assembles ready-to-run particle worlds: a cube of
// rods, a trebuchet, a rolling wheel and a handful of force-generator
// showcases. Scenes are the host side of the physics core; they own
// the particles and generators the world only references.
package scene

import (
	"github.com/san-kum/partsim/internal/world"
)

const (
	DefaultMaxContacts = 64
	DefaultMass        = 5.0
	DefaultDamping     = 0.999
	DefaultGravityY    = -10.0
)

// Params tunes scene construction. Zero values fall back to per-scene
// defaults.
type Params struct {
	Mass        float64
	Damping     float64
	GravityY    float64
	Restitution float64
	MaxContacts int
	Iterations  int
}

func (p Params) withDefaults() Params {
	if p.Mass == 0 {
		p.Mass = DefaultMass
	}
	if p.Damping == 0 {
		p.Damping = DefaultDamping
	}
	if p.GravityY == 0 {
		p.GravityY = DefaultGravityY
	}
	if p.MaxContacts == 0 {
		p.MaxContacts = DefaultMaxContacts
	}
	return p
}

// Scene is a named world plus the link topology the live view draws.
type Scene struct {
	Name  string
	World *world.World

	// Segments lists particle index pairs joined by a rod or cable.
	Segments [][2]int
}

// Step advances the scene one tick.
func (s *Scene) Step(dt float64) {
	s.World.StartFrame()
	s.World.RunPhysics(dt)
}
