// Package metrics provides run-level measurements over a particle
// world, implementing the sim.Metric interface.
package metrics

import (
	"github.com/san-kum/partsim/internal/world"
)

// KineticEnergy reports the time-averaged total kinetic energy of all
// finite-mass particles.
type KineticEnergy struct {
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(w *world.World, t float64) {
	energy := 0.0
	for _, p := range w.Particles() {
		if !p.HasFiniteMass() {
			continue
		}
		v := p.Velocity.Len()
		energy += 0.5 * p.Mass() * v * v
	}
	m.total += energy
	m.samples++
}

func (m *KineticEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *KineticEnergy) Reset() {
	m.samples = 0
	m.total = 0
}

// ContactLoad reports the mean number of contacts generated per frame,
// a rough measure of how hard the constraint set is working.
type ContactLoad struct {
	samples int
	total   int
}

func NewContactLoad() *ContactLoad {
	return &ContactLoad{}
}

func (m *ContactLoad) Name() string { return "contact_load" }

func (m *ContactLoad) Observe(w *world.World, t float64) {
	m.total += w.ContactsUsed()
	m.samples++
}

func (m *ContactLoad) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *ContactLoad) Reset() {
	m.samples = 0
	m.total = 0
}

// ResolverEffort reports the maximum resolver iterations any frame
// consumed. A value pinned at the configured budget means the resolver
// is running out of iterations before convergence.
type ResolverEffort struct {
	max int
}

func NewResolverEffort() *ResolverEffort {
	return &ResolverEffort{}
}

func (m *ResolverEffort) Name() string { return "resolver_effort" }

func (m *ResolverEffort) Observe(w *world.World, t float64) {
	if used := w.IterationsUsed(); used > m.max {
		m.max = used
	}
}

func (m *ResolverEffort) Value() float64 { return float64(m.max) }

func (m *ResolverEffort) Reset() { m.max = 0 }
