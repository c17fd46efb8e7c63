package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is the right-hand side ds/dt = f(s, t) of an ODE.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

// Integrator advances a state by one fixed step of width dt.
type Integrator interface {
	Step(sys System, x State, t, dt float64) (State, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// ParamReporter exposes the named rates a system was built with.
type ParamReporter interface {
	GetParams() map[string]float64
}

type Configurable interface {
	ParamReporter
	SetParam(name string, value float64) error
}

type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Column returns the i-th component of every state, index-aligned with Times.
func (r *Result) Column(i int) []float64 {
	col := make([]float64, len(r.States))
	for n, s := range r.States {
		if i < len(s) {
			col[n] = s[i]
		}
	}
	return col
}

func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
