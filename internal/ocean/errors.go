package ocean

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid indicates a grid with fewer than one row or column.
	ErrInvalidGrid = errors.New("ocean: grid needs at least one row and one column")

	// ErrUnstable indicates a field overflowed to NaN or Inf.
	ErrUnstable = errors.New("ocean: simulation unstable (non-finite field)")
)

// StepError wraps an error with the step and model time it was detected at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
