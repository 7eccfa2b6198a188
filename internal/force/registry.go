// Package force provides force generators and the registry that applies
// them to particles each frame.
package force

import "github.com/san-kum/partsim/internal/particle"

// Generator computes a force and adds it into the given particle's
// accumulator. Implementations must not mutate anything else, except
// where a variant explicitly documents clamping velocity (PointGravity,
// Uplift).
type Generator interface {
	UpdateForce(p *particle.Particle, duration float64)
}

type registration struct {
	particle  *particle.Particle
	generator Generator
}

// Registry holds (particle, generator) associations. Registration order
// is preserved and defines update order. The registry owns neither side.
type Registry struct {
	registrations []registration
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends an association. The same pair may be registered more than
// once; each registration applies the force once per frame.
func (r *Registry) Add(p *particle.Particle, g Generator) {
	r.registrations = append(r.registrations, registration{particle: p, generator: g})
}

// Remove deletes the first matching association, if any.
func (r *Registry) Remove(p *particle.Particle, g Generator) {
	for i, reg := range r.registrations {
		if reg.particle == p && reg.generator == g {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

// Clear empties all associations without touching the particles or
// generators themselves.
func (r *Registry) Clear() {
	r.registrations = r.registrations[:0]
}

// Len returns the number of registered associations.
func (r *Registry) Len() int { return len(r.registrations) }

// UpdateForces invokes every registered generator on its particle, in
// registration order.
func (r *Registry) UpdateForces(duration float64) {
	for _, reg := range r.registrations {
		reg.generator.UpdateForce(reg.particle, duration)
	}
}
