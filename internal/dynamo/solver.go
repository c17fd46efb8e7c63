package dynamo

import (
	"context"
	"fmt"
)

// Solver drives an Integrator over a caller-supplied time grid.
type Solver struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	x0         State
}

func NewSolver(sys System, integrator Integrator) *Solver {
	return &Solver{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
	}
}

func (s *Solver) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Solver) System() System { return s.sys }

// SetInitialCondition binds x0 to the first point of the next Solve call.
func (s *Solver) SetInitialCondition(x0 State) error {
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: initial condition has %d components, system expects %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	s.x0 = x0.Clone()
	return nil
}

// Solve integrates from times[0] to times[len-1] and returns one state per time point.
// Any failed step invalidates the whole call; no partial trajectory is returned.
func (s *Solver) Solve(ctx context.Context, times []float64) (*Result, error) {
	if err := ValidateGrid(times); err != nil {
		return nil, err
	}
	if s.x0 == nil {
		return nil, ErrNoInitialCondition
	}

	result := &Result{
		States:  make([]State, 0, len(times)),
		Times:   append([]float64(nil), times...),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := s.x0.Clone()
	result.States = append(result.States, x)

	for n := 0; n < len(times)-1; n++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		t := times[n]
		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		next, err := s.integrator.Step(s.sys, x, t, times[n+1]-t)
		if err != nil {
			return nil, &SimulationError{Step: n, Time: t, State: x.Clone(), Wrapped: err}
		}
		if !next.IsValid() {
			return nil, &SimulationError{Step: n, Time: t, State: x.Clone(), Wrapped: ErrNumericInstability}
		}

		x = next
		result.StepsTaken++
		result.States = append(result.States, x)
	}

	for _, m := range s.metrics {
		m.Observe(x, times[len(times)-1])
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
