package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/polsim/internal/dynamo"
)

// Convergence reports final-state errors for a sequence of resolutions and the
// observed order between consecutive entries.
type Convergence struct {
	Steps  []int
	Errors []float64
	Orders []float64
}

// ConvergenceOrder integrates sys from t0 to t1 with each step count in steps
// and compares the final state against a run with refSteps steps, using the
// max norm. Orders[i] is log(err[i]/err[i+1]) / log(steps[i+1]/steps[i]).
func ConvergenceOrder(
	ctx context.Context,
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	t0, t1 float64,
	steps []int,
	refSteps int,
) (*Convergence, error) {
	if len(steps) < 2 {
		return nil, fmt.Errorf("analysis: need at least two resolutions, got %d", len(steps))
	}
	for _, n := range steps {
		if n < 1 || n >= refSteps {
			return nil, fmt.Errorf("analysis: step count %d must be in [1, %d)", n, refSteps)
		}
	}

	final := func(n int) (dynamo.State, error) {
		s := dynamo.NewSolver(sys, integ)
		if err := s.SetInitialCondition(x0); err != nil {
			return nil, err
		}
		res, err := s.Solve(ctx, dynamo.Linspace(t0, t1, n+1))
		if err != nil {
			return nil, err
		}
		return res.Final(), nil
	}

	ref, err := final(refSteps)
	if err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}

	conv := &Convergence{Steps: append([]int(nil), steps...)}
	for _, n := range steps {
		x, err := final(n)
		if err != nil {
			return nil, fmt.Errorf("%d steps: %w", n, err)
		}
		conv.Errors = append(conv.Errors, floats.Distance(x, ref, math.Inf(1)))
	}

	for i := 0; i+1 < len(steps); i++ {
		ratio := float64(steps[i+1]) / float64(steps[i])
		conv.Orders = append(conv.Orders, math.Log(conv.Errors[i]/conv.Errors[i+1])/math.Log(ratio))
	}
	return conv, nil
}
