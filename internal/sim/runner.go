// Package sim runs a particle world for a fixed span of simulated time,
// collecting frames, metrics and diagnostics along the way.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/world"
)

// Config controls a simulation run.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Metric observes the world once per step and reduces what it saw to a
// single value at the end of the run.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every step.
type Observer interface {
	OnStep(w *world.World, t float64)
}

// Result holds everything a run produced.
type Result struct {
	// Times and Frames are parallel: Frames[i] snapshots every
	// particle position at Times[i]. Frame 0 is the initial state.
	Times  []float64
	Frames [][]mgl64.Vec3

	Metrics        map[string]float64
	StepsTaken     int
	PeakContacts   int
	PeakIterations int
	Errors         []error
}

// Runner drives a world through repeated frames. Runners are not safe
// for concurrent use.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps w from t=0 to cfg.Duration in cfg.Dt increments. The
// context is checked between steps; cancellation returns the partial
// result along with the context error. State validation stops the run
// at the first NaN or Inf position, recording the failure in
// Result.Errors.
func (r *Runner) Run(ctx context.Context, w *world.World, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Frames:  make([][]mgl64.Vec3, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.Frames = append(result.Frames, snapshot(w))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		w.StartFrame()
		w.RunPhysics(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !stateValid(w) {
			err := &StepError{Step: i, Time: t, Wrapped: ErrUnstable}
			result.Errors = append(result.Errors, err)
			break
		}

		if used := w.ContactsUsed(); used > result.PeakContacts {
			result.PeakContacts = used
		}
		if used := w.IterationsUsed(); used > result.PeakIterations {
			result.PeakIterations = used
		}

		for _, m := range r.metrics {
			m.Observe(w, t)
		}
		for _, o := range r.observers {
			o.OnStep(w, t)
		}

		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, snapshot(w))
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

func snapshot(w *world.World) []mgl64.Vec3 {
	frame := make([]mgl64.Vec3, len(w.Particles()))
	for i, p := range w.Particles() {
		frame[i] = p.Position
	}
	return frame
}

func stateValid(w *world.World) bool {
	for _, p := range w.Particles() {
		for _, v := range [2]mgl64.Vec3{p.Position, p.Velocity} {
			for i := 0; i < 3; i++ {
				if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
					return false
				}
			}
		}
	}
	return true
}
