package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/particle"
)

// GroundPlane is a host-supplied contact generator: it emits one
// scenery contact per particle that has sunk below the plane height.
type GroundPlane struct {
	particles   []*particle.Particle
	height      float64
	restitution float64
}

func NewGroundPlane(particles []*particle.Particle, height, restitution float64) *GroundPlane {
	return &GroundPlane{particles: particles, height: height, restitution: restitution}
}

func (g *GroundPlane) AddContacts(buf []contact.Contact) int {
	count := 0
	for _, p := range g.particles {
		if count >= len(buf) {
			break
		}

		depth := g.height - p.Position.Y()
		if depth <= 0 {
			continue
		}

		c := &buf[count]
		c.Particles[0] = p
		c.Particles[1] = nil
		c.Normal = mgl64.Vec3{0, 1, 0}
		c.Penetration = depth
		c.Restitution = g.restitution
		count++
	}
	return count
}
