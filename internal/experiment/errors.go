package experiment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSettled indicates the frame budget ran out while still animating.
	ErrNotSettled = errors.New("experiment: spring did not settle within the frame budget")

	// ErrDiverged indicates the value became NaN or Inf.
	ErrDiverged = errors.New("experiment: spring diverged (NaN or Inf detected)")

	// ErrNotSetup indicates Run was called before Setup.
	ErrNotSetup = errors.New("experiment: not set up")
)

// RunError wraps an error with the frame it happened on.
type RunError struct {
	Frame   int
	Time    float64
	Value   float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4fs, value=%g): %v", e.Frame, e.Time, e.Value, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
