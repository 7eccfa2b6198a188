package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/world"
)

const (
	spokeLength = 5.0
	rollForce   = 10.0
)

// roller applies a tangential force around the hub, spinning the rim.
// A force generator supplied by the scene, not the core.
type roller struct {
	hub   *particle.Particle
	force float64
}

func (r *roller) UpdateForce(p *particle.Particle, duration float64) {
	if !p.HasFiniteMass() {
		return
	}

	radial := p.Position.Sub(r.hub.Position)
	if radial.Len() == 0 {
		return
	}

	tangent := radial.Cross(mgl64.Vec3{0, 0, 1}).Normalize()
	p.AddForce(tangent.Mul(r.force))
}

// Wheel builds a hub with eight rim particles held by spoke and rim
// rods, rolled along the ground by a tangential driving force.
func Wheel(p Params) *Scene {
	p = p.withDefaults()

	w := world.New(p.MaxContacts, p.Iterations)
	gravity := force.NewGravity(mgl64.Vec3{0, p.GravityY, 0})

	hub := particle.New(p.Mass)
	hub.Position = mgl64.Vec3{0, spokeLength, 0}
	hub.SetDamping(p.Damping)
	w.AddParticle(hub)
	w.ForceRegistry().Add(hub, gravity)

	particles := []*particle.Particle{hub}
	drive := &roller{hub: hub, force: rollForce}

	rim := make([]*particle.Particle, 8)
	for i := range rim {
		angle := float64(i) * math.Pi / 4
		pt := particle.New(p.Mass)
		pt.Position = mgl64.Vec3{
			spokeLength * math.Cos(angle),
			spokeLength + spokeLength*math.Sin(angle),
			0,
		}
		pt.SetDamping(p.Damping)
		rim[i] = pt
		particles = append(particles, pt)
		w.AddParticle(pt)
		w.ForceRegistry().Add(pt, gravity)
		w.ForceRegistry().Add(pt, drive)
	}

	var segments [][2]int
	// Chord between adjacent rim particles 45 degrees apart.
	rimLength := 2 * spokeLength * math.Sin(math.Pi/8)
	for i := range rim {
		w.AddContactGenerator(contact.NewRod(hub, rim[i], spokeLength))
		segments = append(segments, [2]int{0, i + 1})

		next := (i + 1) % len(rim)
		w.AddContactGenerator(contact.NewRod(rim[i], rim[next], rimLength))
		segments = append(segments, [2]int{i + 1, next + 1})
	}

	w.AddContactGenerator(NewGroundPlane(particles, 0, 0))

	return &Scene{Name: "wheel", World: w, Segments: segments}
}
