package viz

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
)

var axisNames = [3]string{"x", "y", "z"}

// PlotTrajectory charts one particle's coordinates over a saved run,
// one asciigraph per axis.
func PlotTrajectory(frames [][]mgl64.Vec3, particleIndex int, width, height int) (string, error) {
	if len(frames) == 0 {
		return "", fmt.Errorf("no frames to plot")
	}
	if particleIndex < 0 || particleIndex >= len(frames[0]) {
		return "", fmt.Errorf("particle %d out of range (run has %d)", particleIndex, len(frames[0]))
	}

	var b strings.Builder
	for axis := 0; axis < 3; axis++ {
		series := make([]float64, len(frames))
		for i, frame := range frames {
			series[i] = frame[particleIndex][axis]
		}
		if flat(series) {
			b.WriteString(fmt.Sprintf("%s: constant %.3f\n\n", axisNames[axis], series[0]))
			continue
		}
		chart := asciigraph.Plot(series,
			asciigraph.Width(width),
			asciigraph.Height(height),
			asciigraph.Caption(fmt.Sprintf("particle %d, %s", particleIndex, axisNames[axis])))
		b.WriteString(chart + "\n\n")
	}
	return b.String(), nil
}

// PlotSeries charts one named metric-like series.
func PlotSeries(name string, series []float64, width, height int) (string, error) {
	if len(series) < 2 {
		return "", fmt.Errorf("series %q too short to plot", name)
	}
	if flat(series) {
		return fmt.Sprintf("%s: constant %.3f\n", name, series[0]), nil
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(name)) + "\n", nil
}

// asciigraph divides by the value range, so flat series are special-cased.
func flat(series []float64) bool {
	for _, v := range series[1:] {
		if v != series[0] {
			return false
		}
	}
	return true
}
