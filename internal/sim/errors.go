package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidConfig indicates a run configuration that cannot be
	// executed (non-positive timestep or duration).
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrUnstable indicates particle state diverged (NaN or Inf).
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")
)

// StepError wraps an error with the step and time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
