package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/particle"
)

func TestGroundPlaneEmitsOnlyForSunkParticles(t *testing.T) {
	above := particle.New(1.0)
	above.Position = mgl64.Vec3{0, 1, 0}
	below := particle.New(1.0)
	below.Position = mgl64.Vec3{0, -0.25, 0}

	g := NewGroundPlane([]*particle.Particle{above, below}, 0, 0.5)

	buf := make([]contact.Contact, 4)
	if got := g.AddContacts(buf); got != 1 {
		t.Fatalf("contacts = %d, want 1", got)
	}

	c := buf[0]
	if c.Particles[0] != below || c.Particles[1] != nil {
		t.Error("contact should reference the sunk particle and scenery")
	}
	if c.Penetration != 0.25 {
		t.Errorf("penetration = %f, want 0.25", c.Penetration)
	}
	if c.Normal != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("normal = %v, want up", c.Normal)
	}
}

func TestGroundPlaneRespectsBufferLimit(t *testing.T) {
	var sunk []*particle.Particle
	for i := 0; i < 5; i++ {
		p := particle.New(1.0)
		p.Position = mgl64.Vec3{float64(i), -1, 0}
		sunk = append(sunk, p)
	}

	g := NewGroundPlane(sunk, 0, 0)

	buf := make([]contact.Contact, 2)
	if got := g.AddContacts(buf); got != 2 {
		t.Errorf("contacts = %d, want 2 (buffer limit)", got)
	}
	if got := g.AddContacts(nil); got != 0 {
		t.Errorf("contacts into empty buffer = %d, want 0", got)
	}
}
