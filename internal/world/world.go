// Package world orchestrates one simulation step over a set of
// particles, force generators and contact generators.
package world

import (
	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
)

// World steps a particle simulation one frame at a time: clear forces,
// apply forces, integrate, generate contacts, resolve contacts. It
// holds only non-owning references; particles and generators belong to
// the host.
//
// Worlds are not safe for concurrent use. Everything happens
// synchronously inside one tick.
type World struct {
	particles  []*particle.Particle
	registry   *force.Registry
	generators []contact.Generator

	contacts     []contact.Contact
	contactsUsed int
	resolver     *contact.Resolver

	// With no explicit iteration budget the resolver gets twice the
	// generated contact count, recomputed every frame.
	calculateIterations bool
}

// New creates a world with a contact buffer of maxContacts entries,
// allocated once and reused every frame. iterations is the resolver
// budget; 0 means derive it from the per-frame contact count.
func New(maxContacts, iterations int) *World {
	return &World{
		registry:            force.NewRegistry(),
		contacts:            make([]contact.Contact, maxContacts),
		resolver:            contact.NewResolver(iterations),
		calculateIterations: iterations == 0,
	}
}

// AddParticle registers a particle for integration and frame-start
// force clearing. The world does not take ownership.
func (w *World) AddParticle(p *particle.Particle) {
	w.particles = append(w.particles, p)
}

// Particles returns the tracked particles. The slice is shared, not a
// copy.
func (w *World) Particles() []*particle.Particle { return w.particles }

// ForceRegistry returns the registry forces are applied through each
// frame.
func (w *World) ForceRegistry() *force.Registry { return w.registry }

// AddContactGenerator appends a contact generator. Generators run in
// registration order each frame.
func (w *World) AddContactGenerator(g contact.Generator) {
	w.generators = append(w.generators, g)
}

// Resolver exposes the contact resolver, mainly for policy flags and
// diagnostics.
func (w *World) Resolver() *contact.Resolver { return w.resolver }

// StartFrame clears every tracked particle's force accumulator. The
// host calls this before injecting any one-off forces for the tick.
func (w *World) StartFrame() {
	for _, p := range w.particles {
		p.ClearForces()
	}
}

// Integrate advances every tracked particle by duration seconds.
func (w *World) Integrate(duration float64) {
	for _, p := range w.particles {
		p.Integrate(duration)
	}
}

// GenerateContacts runs every contact generator, handing each the
// remaining buffer capacity. Generation truncates silently once the
// buffer is full; excess violations wait for the next frame. Returns
// the number of contacts written.
func (w *World) GenerateContacts() int {
	limit := len(w.contacts)
	next := 0

	for _, g := range w.generators {
		used := g.AddContacts(w.contacts[next : next+limit])
		limit -= used
		next += used

		if limit <= 0 {
			break
		}
	}

	w.contactsUsed = next
	return next
}

// ContactsUsed reports how many contacts the last frame generated.
func (w *World) ContactsUsed() int { return w.contactsUsed }

// IterationsUsed reports the resolver iterations the last frame
// consumed.
func (w *World) IterationsUsed() int { return w.resolver.IterationsUsed() }

// RunPhysics processes one tick: apply registered forces, integrate,
// generate contacts and resolve them. The host guards against
// non-positive durations; the integrator additionally treats them as a
// no-op.
func (w *World) RunPhysics(duration float64) {
	w.registry.UpdateForces(duration)
	w.Integrate(duration)

	used := w.GenerateContacts()
	if used > 0 {
		if w.calculateIterations {
			w.resolver.SetIterations(used * 2)
		}
		w.resolver.ResolveContacts(w.contacts[:used], duration)
	}
}
