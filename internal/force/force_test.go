package force

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/particle"
)

func TestGravityScalesByMass(t *testing.T) {
	g := NewGravity(mgl64.Vec3{0, -10, 0})
	p := particle.New(5.0)

	g.UpdateForce(p, 0.1)

	if got := p.ForceAccum(); got != (mgl64.Vec3{0, -50, 0}) {
		t.Errorf("gravity force = %v, want {0 -50 0}", got)
	}
}

func TestGravitySkipsInfiniteMass(t *testing.T) {
	g := NewGravity(mgl64.Vec3{0, -10, 0})
	p := particle.NewImmovable()

	g.UpdateForce(p, 0.1)

	if got := p.ForceAccum(); got != (mgl64.Vec3{}) {
		t.Errorf("gravity applied to immovable particle: %v", got)
	}
}

func TestPointGravityMagnitudeAndDirection(t *testing.T) {
	g := NewPointGravity(8.0, mgl64.Vec3{})
	p := particle.New(2.0)
	p.Position = mgl64.Vec3{4, 0, 0}

	g.UpdateForce(p, 0.1)

	// magnitude = scalar * mass / dist^1.5 = 8*2/8 = 2, toward the point.
	want := mgl64.Vec3{-2, 0, 0}
	if got := p.ForceAccum(); got.Sub(want).Len() > 1e-12 {
		t.Errorf("point gravity force = %v, want %v", got, want)
	}
}

func TestPointGravitySingularityGuard(t *testing.T) {
	g := NewPointGravity(100.0, mgl64.Vec3{})
	p := particle.New(1.0)
	p.Position = mgl64.Vec3{0.3, 0, 0}
	p.Velocity = mgl64.Vec3{7, 7, 7}

	g.UpdateForce(p, 0.1)

	if got := p.ForceAccum(); got != (mgl64.Vec3{}) {
		t.Errorf("force applied inside singularity guard: %v", got)
	}
	if p.Velocity != (mgl64.Vec3{}) {
		t.Errorf("velocity not zeroed inside singularity guard: %v", p.Velocity)
	}
}

func TestSpringForceOpposesDisplacement(t *testing.T) {
	anchor := particle.NewImmovable()
	anchor.Position = mgl64.Vec3{}
	s := NewSpring(anchor, 10.0, 1.0)

	p := particle.New(1.0)
	p.Position = mgl64.Vec3{3, 0, 0}

	s.UpdateForce(p, 0.1)

	// Stretched by 2: magnitude 20 pulling back toward the anchor.
	want := mgl64.Vec3{-20, 0, 0}
	if got := p.ForceAccum(); got.Sub(want).Len() > 1e-12 {
		t.Errorf("spring force = %v, want %v", got, want)
	}
}

func TestAnchoredSpringMatchesSpring(t *testing.T) {
	s := NewAnchoredSpring(mgl64.Vec3{0, 5, 0}, 4.0, 2.0)

	p := particle.New(1.0)
	p.Position = mgl64.Vec3{0, 1, 0}

	s.UpdateForce(p, 0.1)

	// Displacement 4, rest 2: magnitude 8 pulling up.
	want := mgl64.Vec3{0, 8, 0}
	if got := p.ForceAccum(); got.Sub(want).Len() > 1e-12 {
		t.Errorf("anchored spring force = %v, want %v", got, want)
	}
}

func TestBungeeOnlyPulls(t *testing.T) {
	other := particle.NewImmovable()
	b := NewBungee(other, 10.0, 2.0)

	slack := particle.New(1.0)
	slack.Position = mgl64.Vec3{1, 0, 0}
	b.UpdateForce(slack, 0.1)
	if got := slack.ForceAccum(); got != (mgl64.Vec3{}) {
		t.Errorf("slack bungee pushed: %v", got)
	}

	taut := particle.New(1.0)
	taut.Position = mgl64.Vec3{5, 0, 0}
	b.UpdateForce(taut, 0.1)
	want := mgl64.Vec3{-30, 0, 0}
	if got := taut.ForceAccum(); got.Sub(want).Len() > 1e-12 {
		t.Errorf("taut bungee force = %v, want %v", got, want)
	}
}

func TestBuoyancyPiecewiseLinear(t *testing.T) {
	const (
		maxDepth = 1.0
		volume   = 2.0
		water    = 0.0
		density  = 100.0
	)
	b := NewBuoyancy(maxDepth, volume, water, density)

	tests := []struct {
		name  string
		depth float64
		want  float64
	}{
		{"above surface", water + maxDepth, 0},
		{"well above", water + 10, 0},
		{"fully submerged boundary", water - maxDepth, density * volume},
		{"deep", water - 50, density * volume},
		{"half submerged", water, density * volume * 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := particle.New(1.0)
			p.Position = mgl64.Vec3{0, tt.depth, 0}
			b.UpdateForce(p, 0.1)
			if got := p.ForceAccum().Y(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("buoyancy at depth %.2f = %f, want %f", tt.depth, got, tt.want)
			}
		})
	}
}

func TestBuoyancyRejectsInvalidConstruction(t *testing.T) {
	for _, args := range [][4]float64{
		{0, 1, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 0, -5},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewBuoyancy(%v) did not panic", args)
				}
			}()
			NewBuoyancy(args[0], args[1], args[2], args[3])
		}()
	}
}

func TestUpliftBelowAndAboveMaxHeight(t *testing.T) {
	gravity := NewGravity(mgl64.Vec3{0, -10, 0})
	uplift := NewUplift(mgl64.Vec3{0, 20, 0}, 10.0, gravity)

	below := particle.New(5.0)
	below.Position = mgl64.Vec3{0, 2, 0}
	uplift.UpdateForce(below, 0.1)
	if got := below.ForceAccum(); got != (mgl64.Vec3{0, 100, 0}) {
		t.Errorf("uplift below max height = %v, want {0 100 0}", got)
	}

	above := particle.New(5.0)
	above.Position = mgl64.Vec3{0, 10, 0}
	above.Velocity = mgl64.Vec3{0, 3, 0}
	gravity.UpdateForce(above, 0.1)
	uplift.UpdateForce(above, 0.1)
	// Levitation lock: gravity exactly cancelled, velocity zeroed.
	if got := above.ForceAccum(); got != (mgl64.Vec3{}) {
		t.Errorf("net force at levitation height = %v, want zero", got)
	}
	if above.Velocity != (mgl64.Vec3{}) {
		t.Errorf("velocity at levitation height = %v, want zero", above.Velocity)
	}
}

func TestRegistryUpdateOrderAndRemove(t *testing.T) {
	reg := NewRegistry()
	p1 := particle.New(1.0)
	p2 := particle.New(1.0)

	var order []string
	a := generatorFunc(func(p *particle.Particle, d float64) { order = append(order, "a") })
	b := generatorFunc(func(p *particle.Particle, d float64) { order = append(order, "b") })

	reg.Add(p1, a)
	reg.Add(p2, b)
	reg.Add(p1, b)
	reg.UpdateForces(0.1)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "b" {
		t.Fatalf("update order = %v, want [a b b]", order)
	}

	order = nil
	reg.Remove(p1, b)
	reg.UpdateForces(0.1)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("after remove, update order = %v, want [a b]", order)
	}

	// Removing an absent pair is a no-op.
	reg.Remove(p2, a)
	if reg.Len() != 2 {
		t.Errorf("registry len = %d, want 2", reg.Len())
	}

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("registry len after clear = %d, want 0", reg.Len())
	}
}

func TestRegistryRemoveStopsAffectingParticle(t *testing.T) {
	reg := NewRegistry()
	g := NewGravity(mgl64.Vec3{0, -10, 0})
	p1 := particle.New(1.0)
	p2 := particle.New(1.0)

	reg.Add(p1, g)
	reg.Add(p2, g)
	reg.Remove(p1, g)
	reg.UpdateForces(0.1)

	if got := p1.ForceAccum(); got != (mgl64.Vec3{}) {
		t.Errorf("removed registration still applied force: %v", got)
	}
	if got := p2.ForceAccum(); got != (mgl64.Vec3{0, -10, 0}) {
		t.Errorf("surviving registration not applied: %v", got)
	}
}

type generatorFunc func(p *particle.Particle, duration float64)

func (f generatorFunc) UpdateForce(p *particle.Particle, duration float64) { f(p, duration) }
