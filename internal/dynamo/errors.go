package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDimensionMismatch indicates a state or rate vector whose length differs from the system's.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidTimeGrid indicates fewer than two time points or a grid that is not strictly increasing.
	ErrInvalidTimeGrid = errors.New("dynamo: time grid needs at least 2 strictly increasing points")

	// ErrDegenerateState indicates a population total that is zero or negative.
	ErrDegenerateState = errors.New("dynamo: degenerate state (non-positive population total)")

	// ErrNumericInstability indicates a step produced NaN or Inf.
	ErrNumericInstability = errors.New("dynamo: simulation unstable (non-finite state)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	ErrNoInitialCondition = errors.New("dynamo: initial condition not set")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
