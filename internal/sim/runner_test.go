package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/partsim/internal/contact"
	"github.com/san-kum/partsim/internal/force"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/world"
)

func fallingWorld() (*world.World, *particle.Particle) {
	w := world.New(4, 0)
	p := particle.New(1.0)
	p.Position = mgl64.Vec3{0, 100, 0}
	w.AddParticle(p)
	w.ForceRegistry().Add(p, force.NewGravity(mgl64.Vec3{0, -10, 0}))
	return w, p
}

func TestRunCollectsFrames(t *testing.T) {
	w, p := fallingWorld()

	result, err := NewRunner().Run(context.Background(), w, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("steps taken = %d, want 10", result.StepsTaken)
	}
	if len(result.Frames) != 11 || len(result.Times) != 11 {
		t.Fatalf("frames/times = %d/%d, want 11/11", len(result.Frames), len(result.Times))
	}
	if result.Frames[0][0] != (mgl64.Vec3{0, 100, 0}) {
		t.Errorf("frame 0 = %v, want initial position", result.Frames[0][0])
	}
	if got := result.Frames[10][0]; got != p.Position {
		t.Errorf("last frame = %v, want final position %v", got, p.Position)
	}
	if p.Position.Y() >= 100 {
		t.Errorf("particle did not fall: y = %f", p.Position.Y())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	w, _ := fallingWorld()

	for _, cfg := range []Config{
		{Dt: 0, Duration: 1},
		{Dt: -0.1, Duration: 1},
		{Dt: 0.1, Duration: 0},
	} {
		_, err := NewRunner().Run(context.Background(), w, cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Run(%+v) error = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	w, _ := fallingWorld()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner().Run(ctx, w, Config{Dt: 0.01, Duration: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result == nil || result.StepsTaken != 0 {
		t.Error("expected a partial result with zero steps")
	}
}

func TestRunDetectsDivergence(t *testing.T) {
	w := world.New(4, 0)
	p := particle.New(1.0)
	p.Velocity = mgl64.Vec3{math.NaN(), 0, 0}
	w.AddParticle(p)

	result, err := NewRunner().Run(context.Background(), w, Config{Dt: 0.01, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 1 {
		t.Errorf("steps taken = %d, want 1 (stop at first invalid state)", result.StepsTaken)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], ErrUnstable) {
		t.Errorf("errors = %v, want one ErrUnstable", result.Errors)
	}
}

type countingMetric struct {
	observations int
}

func (m *countingMetric) Name() string { return "observations" }

func (m *countingMetric) Observe(w *world.World, t float64) { m.observations++ }

func (m *countingMetric) Value() float64 { return float64(m.observations) }

func (m *countingMetric) Reset() { m.observations = 0 }

func TestRunInvokesMetrics(t *testing.T) {
	w, _ := fallingWorld()

	r := NewRunner()
	m := &countingMetric{observations: 99} // Reset must clear this
	r.AddMetric(m)

	result, err := r.Run(context.Background(), w, Config{Dt: 0.1, Duration: 0.5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := result.Metrics["observations"]; got != 5 {
		t.Errorf("metric observed %v times, want 5", got)
	}
}

func TestRunTracksResolverDiagnostics(t *testing.T) {
	w := world.New(4, 0)
	anchor := particle.NewImmovable()
	anchor.Position = mgl64.Vec3{0, 1, 0}
	bob := particle.New(1.0)
	w.AddParticle(anchor)
	w.AddParticle(bob)
	w.ForceRegistry().Add(bob, force.NewGravity(mgl64.Vec3{0, -10, 0}))
	w.AddContactGenerator(contact.NewRod(anchor, bob, 1.0))

	result, err := NewRunner().Run(context.Background(), w, Config{Dt: 0.05, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.PeakContacts < 1 {
		t.Errorf("peak contacts = %d, want >= 1", result.PeakContacts)
	}
	if result.PeakIterations < 1 {
		t.Errorf("peak iterations = %d, want >= 1", result.PeakIterations)
	}
}
