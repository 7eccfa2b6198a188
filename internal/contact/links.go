package contact

import (
	"math"

	"github.com/san-kum/partsim/internal/particle"
)

// rodTolerance is the slack inside which a rod is considered at nominal
// length and emits no contact.
const rodTolerance = 1e-9

// Link connects two particles and generates a contact when the
// constraint between them is violated. Cable and Rod embed it.
type Link struct {
	Particles [2]*particle.Particle
}

// CurrentLength returns the distance between the linked particles.
func (l *Link) CurrentLength() float64 {
	return l.Particles[0].Position.Sub(l.Particles[1].Position).Len()
}

// Cable keeps two particles within MaxLength of each other, generating
// a contact when taut. Restitution controls how much the pair bounces
// back together.
type Cable struct {
	Link
	MaxLength   float64
	Restitution float64
}

func NewCable(a, b *particle.Particle, maxLength, restitution float64) *Cable {
	return &Cable{Link: Link{Particles: [2]*particle.Particle{a, b}}, MaxLength: maxLength, Restitution: restitution}
}

func (c *Cable) AddContacts(buf []Contact) int {
	if len(buf) == 0 {
		return 0
	}

	length := c.CurrentLength()
	if length < c.MaxLength {
		return 0
	}

	contact := &buf[0]
	contact.Particles[0] = c.Particles[0]
	contact.Particles[1] = c.Particles[1]
	contact.Normal = c.Particles[1].Position.Sub(c.Particles[0].Position).Normalize()
	contact.Penetration = length - c.MaxLength
	contact.Restitution = c.Restitution

	return 1
}

// Rod holds two particles at an exact distance, generating a contact
// whether stretched or compressed. Rods never bounce.
type Rod struct {
	Link
	Length float64
}

func NewRod(a, b *particle.Particle, length float64) *Rod {
	return &Rod{Link: Link{Particles: [2]*particle.Particle{a, b}}, Length: length}
}

func (r *Rod) AddContacts(buf []Contact) int {
	if len(buf) == 0 {
		return 0
	}

	currentLen := r.CurrentLength()
	if math.Abs(currentLen-r.Length) < rodTolerance {
		return 0
	}

	contact := &buf[0]
	contact.Particles[0] = r.Particles[0]
	contact.Particles[1] = r.Particles[1]

	normal := r.Particles[1].Position.Sub(r.Particles[0].Position).Normalize()

	// The normal flips depending on whether the rod needs to pull the
	// particles together or push them apart.
	if currentLen > r.Length {
		contact.Normal = normal
		contact.Penetration = currentLen - r.Length
	} else {
		contact.Normal = normal.Mul(-1)
		contact.Penetration = r.Length - currentLen
	}

	contact.Restitution = 0

	return 1
}
