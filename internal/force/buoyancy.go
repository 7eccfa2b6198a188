package force

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/particle"
)

// Buoyancy pushes a particle up along the y axis with a force
// piecewise-linear in submersion depth: zero when fully out of the
// water, liquidDensity*volume when fully submerged, interpolated in
// between. maxDepth is the half-height of the particle's volume around
// its center.
type Buoyancy struct {
	maxDepth      float64
	volume        float64
	waterHeight   float64
	liquidDensity float64
}

// NewBuoyancy panics on non-positive maxDepth, volume or density: these
// are construction-time programmer errors, not recoverable states.
func NewBuoyancy(maxDepth, volume, waterHeight, liquidDensity float64) *Buoyancy {
	if maxDepth <= 0 || volume <= 0 || liquidDensity <= 0 {
		panic("force: buoyancy requires positive maxDepth, volume and liquidDensity")
	}
	return &Buoyancy{
		maxDepth:      maxDepth,
		volume:        volume,
		waterHeight:   waterHeight,
		liquidDensity: liquidDensity,
	}
}

func (b *Buoyancy) UpdateForce(p *particle.Particle, duration float64) {
	depth := p.Position.Y()

	// Fully out of the water.
	if depth >= b.waterHeight+b.maxDepth {
		return
	}

	// Fully submerged.
	if depth <= b.waterHeight-b.maxDepth {
		p.AddForce(mgl64.Vec3{0, b.liquidDensity * b.volume, 0})
		return
	}

	submerged := (b.waterHeight + b.maxDepth - depth) / (2 * b.maxDepth)
	p.AddForce(mgl64.Vec3{0, b.liquidDensity * b.volume * submerged, 0})
}
