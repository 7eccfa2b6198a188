package contact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Resolver reconciles a set of contacts by repeatedly resolving the
// worst violator. Resolving one contact perturbs the separating
// velocities and penetrations of contacts sharing a particle, so the
// resolver re-scans after every single resolution instead of sweeping
// the list once.
type Resolver struct {
	iterations     int
	iterationsUsed int

	// skipPenetration disables the interpenetration pass, leaving
	// velocity-only resolution. Off by default.
	skipPenetration bool
}

// NewResolver creates a resolver with the given iteration budget. A
// budget of about twice the expected contact count lets constraint
// chains converge.
func NewResolver(iterations int) *Resolver {
	return &Resolver{iterations: iterations}
}

// SetIterations replaces the iteration budget.
func (r *Resolver) SetIterations(iterations int) {
	r.iterations = iterations
}

// SetSkipPenetration toggles the interpenetration pass. Hosts that do
// their own position correction can disable it.
func (r *Resolver) SetSkipPenetration(skip bool) {
	r.skipPenetration = skip
}

// IterationsUsed reports how many iterations the last ResolveContacts
// call consumed. Diagnostic only.
func (r *Resolver) IterationsUsed() int { return r.iterationsUsed }

// ResolveContacts resolves velocity and interpenetration across the
// given contacts. Each iteration picks the contact with the most
// negative separating velocity (or any remaining penetration), resolves
// only that one, then propagates its position corrections into the
// penetrations of contacts sharing a particle. Stops early when nothing
// is closing or penetrating.
func (r *Resolver) ResolveContacts(contacts []Contact, duration float64) {
	r.iterationsUsed = 0

	for r.iterationsUsed < r.iterations {
		// Find the worst violator.
		worst := -1
		max := math.MaxFloat64
		for i := range contacts {
			sepVel := contacts[i].SeparatingVelocity()
			if sepVel < max && (sepVel < 0 || contacts[i].Penetration > 0) {
				max = sepVel
				worst = i
			}
		}
		if worst < 0 {
			break
		}

		r.resolve(&contacts[worst], duration)

		// The position corrections just applied change how deep the
		// other contacts on the same particles are.
		move := contacts[worst].Movement
		for i := range contacts {
			c := &contacts[i]
			if c.Particles[0] == contacts[worst].Particles[0] {
				c.Penetration -= move[0].Dot(c.Normal)
			} else if c.Particles[0] == contacts[worst].Particles[1] {
				c.Penetration -= move[1].Dot(c.Normal)
			}
			if c.Particles[1] != nil {
				if c.Particles[1] == contacts[worst].Particles[0] {
					c.Penetration += move[0].Dot(c.Normal)
				} else if c.Particles[1] == contacts[worst].Particles[1] {
					c.Penetration += move[1].Dot(c.Normal)
				}
			}
		}

		r.iterationsUsed++
	}
}

func (r *Resolver) resolve(c *Contact, duration float64) {
	r.resolveVelocity(c, duration)
	if !r.skipPenetration {
		r.resolveInterpenetration(c, duration)
	}
}

func (r *Resolver) resolveVelocity(c *Contact, duration float64) {
	sepVelocity := c.SeparatingVelocity()
	if sepVelocity > 0 {
		// Separating or resting, no impulse needed.
		return
	}

	newSepVelocity := -sepVelocity * c.Restitution

	// Closing velocity built up by this frame's acceleration alone
	// would re-bounce resting contacts every frame. Take it back out.
	accVelocity := c.Particles[0].Acceleration
	if c.Particles[1] != nil {
		accVelocity = accVelocity.Sub(c.Particles[1].Acceleration)
	}
	accSepVelocity := accVelocity.Dot(c.Normal) * duration
	if accSepVelocity < 0 {
		newSepVelocity += c.Restitution * accSepVelocity
		if newSepVelocity < 0 {
			newSepVelocity = 0
		}
	}

	deltaVelocity := newSepVelocity - sepVelocity

	totalInverseMass := c.totalInverseMass()
	if totalInverseMass <= 0 {
		// Both participants immovable.
		return
	}

	impulse := deltaVelocity / totalInverseMass
	impulsePerIMass := c.Normal.Mul(impulse)

	p0 := c.Particles[0]
	p0.Velocity = p0.Velocity.Add(impulsePerIMass.Mul(p0.InverseMass()))
	if p1 := c.Particles[1]; p1 != nil {
		p1.Velocity = p1.Velocity.Add(impulsePerIMass.Mul(-p1.InverseMass()))
	}
}

func (r *Resolver) resolveInterpenetration(c *Contact, duration float64) {
	c.Movement[0] = mgl64.Vec3{}
	c.Movement[1] = mgl64.Vec3{}

	if c.Penetration <= 0 {
		return
	}

	totalInverseMass := c.totalInverseMass()
	if totalInverseMass <= 0 {
		return
	}

	// Distribute the correction in proportion to inverse mass, applied
	// directly to positions, bypassing velocity.
	movePerIMass := c.Normal.Mul(c.Penetration / totalInverseMass)

	p0 := c.Particles[0]
	c.Movement[0] = movePerIMass.Mul(p0.InverseMass())
	p0.Position = p0.Position.Add(c.Movement[0])

	if p1 := c.Particles[1]; p1 != nil {
		c.Movement[1] = movePerIMass.Mul(-p1.InverseMass())
		p1.Position = p1.Position.Add(c.Movement[1])
	}

	// Penetration itself is updated by the resolver's propagation
	// pass, which also covers this contact.
}
