package integrators

import (
	"fmt"

	"github.com/san-kum/polsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// RK4 is the classical fixed-step fourth-order Runge-Kutta method.
// Scratch buffers are reused across steps, so an RK4 value must not be
// shared between goroutines.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	n := len(x)
	r.ensureScratch(n)

	if err := r.stage(sys, x, t, r.k1); err != nil {
		return nil, err
	}

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k1)
	if err := r.stage(sys, r.scratch, t+dt*0.5, r.k2); err != nil {
		return nil, err
	}

	floats.AddScaledTo(r.scratch, x, dt*0.5, r.k2)
	if err := r.stage(sys, r.scratch, t+dt*0.5, r.k3); err != nil {
		return nil, err
	}

	floats.AddScaledTo(r.scratch, x, dt, r.k3)
	if err := r.stage(sys, r.scratch, t+dt, r.k4); err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result, nil
}

func (r *RK4) stage(sys dynamo.System, x dynamo.State, t float64, dst dynamo.State) error {
	k, err := sys.Derive(x, t)
	if err != nil {
		return err
	}
	if len(k) != len(dst) {
		return fmt.Errorf("%w: rate vector has %d components, state has %d",
			dynamo.ErrDimensionMismatch, len(k), len(dst))
	}
	copy(dst, k)
	return nil
}
