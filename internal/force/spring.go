package force

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/particle"
)

// Spring connects a particle to another particle with a Hookean spring.
// Each endpoint needs its own generator registration; the generator only
// touches the particle it is updating.
type Spring struct {
	other          *particle.Particle
	springConstant float64
	restLength     float64
}

func NewSpring(other *particle.Particle, springConstant, restLength float64) *Spring {
	return &Spring{other: other, springConstant: springConstant, restLength: restLength}
}

func (s *Spring) UpdateForce(p *particle.Particle, duration float64) {
	p.AddForce(springForce(p.Position, s.other.Position, s.springConstant, s.restLength))
}

// AnchoredSpring is a Spring with a fixed world-space anchor instead of
// a second particle.
type AnchoredSpring struct {
	anchor         mgl64.Vec3
	springConstant float64
	restLength     float64
}

func NewAnchoredSpring(anchor mgl64.Vec3, springConstant, restLength float64) *AnchoredSpring {
	return &AnchoredSpring{anchor: anchor, springConstant: springConstant, restLength: restLength}
}

func (s *AnchoredSpring) UpdateForce(p *particle.Particle, duration float64) {
	p.AddForce(springForce(p.Position, s.anchor, s.springConstant, s.restLength))
}

// Bungee pulls like a spring when stretched past its rest length and
// applies nothing when slack. A bungee never pushes.
type Bungee struct {
	other          *particle.Particle
	springConstant float64
	restLength     float64
}

func NewBungee(other *particle.Particle, springConstant, restLength float64) *Bungee {
	return &Bungee{other: other, springConstant: springConstant, restLength: restLength}
}

func (b *Bungee) UpdateForce(p *particle.Particle, duration float64) {
	d := p.Position.Sub(b.other.Position)
	length := d.Len()
	if length <= b.restLength {
		return
	}

	magnitude := b.springConstant * (length - b.restLength)
	p.AddForce(d.Mul(-magnitude / length))
}

// springForce returns the Hookean force on a particle at pos attached to
// end, magnitude k*|length-rest|, directed against the displacement.
func springForce(pos, end mgl64.Vec3, springConstant, restLength float64) mgl64.Vec3 {
	d := pos.Sub(end)
	length := d.Len()
	if length == 0 {
		return mgl64.Vec3{}
	}

	magnitude := springConstant * math.Abs(length-restLength)
	return d.Mul(-magnitude / length)
}
