package scene_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/scene"
)

const dt = 0.016

func run(s *scene.Scene, steps int) {
	for i := 0; i < steps; i++ {
		s.Step(dt)
	}
}

func allFinite(s *scene.Scene) bool {
	for _, p := range s.World.Particles() {
		for i := 0; i < 3; i++ {
			if math.IsNaN(p.Position[i]) || math.IsInf(p.Position[i], 0) {
				return false
			}
		}
	}
	return true
}

var _ = Describe("Registry", func() {
	It("lists every scene in sorted order", func() {
		Expect(scene.List()).To(Equal([]string{
			"cube", "damping", "lighter", "pointgrav", "trebuchet", "uplift", "wheel",
		}))
	})

	It("rejects unknown scene names", func() {
		_, err := scene.Build("teapot", scene.Params{})
		Expect(err).To(MatchError(ContainSubstring("unknown scene")))
	})

	It("builds every registered scene", func() {
		for _, name := range scene.List() {
			s, err := scene.Build(name, scene.Params{})
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(s.Name).To(Equal(name))
			Expect(s.World.Particles()).NotTo(BeEmpty(), name)
		}
	})
})

var _ = Describe("Cube", func() {
	It("lands on the ground without losing its shape", func() {
		s := scene.Cube(scene.Params{})
		run(s, 300)

		Expect(allFinite(s)).To(BeTrue())

		for _, p := range s.World.Particles() {
			Expect(p.Position.Y()).To(BeNumerically(">", -0.5),
				"particle sank through the ground")
		}

		// Each segment is a rod of length 2 or sqrt(8); total drift
		// across all eighteen stays small once the box has settled.
		total := 0.0
		for _, seg := range s.Segments {
			a := s.World.Particles()[seg[0]]
			b := s.World.Particles()[seg[1]]
			length := a.Position.Sub(b.Position).Len()
			nominal := 2.0
			if length > 2.4 {
				nominal = math.Sqrt(8)
			}
			total += math.Abs(length - nominal)
		}
		Expect(total).To(BeNumerically("<", 1.0))
	})
})

var _ = Describe("Trebuchet", func() {
	It("keeps its base anchored while the arm swings", func() {
		s := scene.Trebuchet(scene.Params{})

		base := make([][3]float64, 4)
		for i := 0; i < 4; i++ {
			p := s.World.Particles()[i].Position
			base[i] = [3]float64{p.X(), p.Y(), p.Z()}
		}
		projectileStart := s.World.Particles()[8].Position

		run(s, 300)

		Expect(allFinite(s)).To(BeTrue())
		for i := 0; i < 4; i++ {
			p := s.World.Particles()[i].Position
			Expect([3]float64{p.X(), p.Y(), p.Z()}).To(Equal(base[i]),
				"immovable base corner moved")
		}
		Expect(s.World.Particles()[8].Position.Sub(projectileStart).Len()).
			To(BeNumerically(">", 0.01), "projectile never moved")
	})
})

var _ = Describe("Wheel", func() {
	It("spins without the rim tearing off", func() {
		s := scene.Wheel(scene.Params{})
		run(s, 300)

		Expect(allFinite(s)).To(BeTrue())

		hub := s.World.Particles()[0]
		for _, p := range s.World.Particles()[1:] {
			spoke := p.Position.Sub(hub.Position).Len()
			Expect(math.Abs(spoke - 5.0)).To(BeNumerically("<", 0.5),
				"spoke length drifted")
		}
	})
})

var _ = Describe("Uplift", func() {
	It("levitates every particle at the lock height", func() {
		s := scene.Uplift(scene.Params{})
		run(s, 400)

		Expect(allFinite(s)).To(BeTrue())
		for _, p := range s.World.Particles() {
			Expect(p.Position.Y()).To(BeNumerically(">", 9.5))
			Expect(p.Position.Y()).To(BeNumerically("<", 11.0))
		}
	})
})

var _ = Describe("PointGrav", func() {
	It("pulls every particle toward the attractor", func() {
		s := scene.PointGrav(scene.Params{})

		before := make([]float64, len(s.World.Particles()))
		for i, p := range s.World.Particles() {
			before[i] = p.Position.Len()
		}

		run(s, 600)

		Expect(allFinite(s)).To(BeTrue())
		for i, p := range s.World.Particles() {
			Expect(p.Position.Len()).To(BeNumerically("<", before[i]),
				"particle drifted away from the attractor")
		}
	})
})

var _ = Describe("Damping", func() {
	It("slows heavily damped columns more than undamped ones", func() {
		s := scene.Damping(scene.Params{})
		run(s, 100)

		Expect(allFinite(s)).To(BeTrue())

		// Columns are laid out damping 1.0 first, 0.5 last; four rows
		// each. Undamped fall speed must exceed the heavily damped one.
		particles := s.World.Particles()
		undamped := particles[0].Velocity.Y()
		damped := particles[len(particles)-1].Velocity.Y()
		Expect(math.Abs(undamped)).To(BeNumerically(">", math.Abs(damped)))
	})
})

var _ = Describe("Lighter", func() {
	It("floats buoyant particles while the control group sinks", func() {
		s := scene.Lighter(scene.Params{})
		run(s, 600)

		Expect(allFinite(s)).To(BeTrue())

		particles := s.World.Particles()
		for i := 0; i < len(particles); i += 2 {
			floater, sinker := particles[i], particles[i+1]
			Expect(floater.Position.Y()).To(BeNumerically(">", -2.0))
			Expect(floater.Position.Y()).To(BeNumerically("<", 2.0))
			Expect(sinker.Position.Y()).To(BeNumerically("<", -5.0))
		}
	})
})
