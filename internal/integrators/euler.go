package integrators

import (
	"fmt"

	"github.com/san-kum/polsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Euler is the explicit forward Euler method. Paired with a noisy system it
// is the Euler-Maruyama scheme.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	if len(dx) != len(x) {
		return nil, fmt.Errorf("%w: rate vector has %d components, state has %d",
			dynamo.ErrDimensionMismatch, len(dx), len(x))
	}
	result := make(dynamo.State, len(x))
	floats.AddScaledTo(result, x, dt, dx)
	return result, nil
}
