package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/polsim/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[1], -x[0]}, nil
}

func (s *simpleDynamics) StateDim() int { return 2 }

type recordingDynamics struct {
	times []float64
}

func (r *recordingDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	r.times = append(r.times, t)
	return dynamo.State{1}, nil
}

func (r *recordingDynamics) StateDim() int { return 1 }

type shortDynamics struct{}

func (s *shortDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[0]}, nil
}

func (s *shortDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		var err error
		x, err = integ.Step(dyn, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatal(err)
		}
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	dyn := &simpleDynamics{}
	final := func(steps int) float64 {
		integ := NewRK4()
		x := dynamo.State{1.0, 0.0}
		dt := 1.0 / float64(steps)
		for i := 0; i < steps; i++ {
			x, _ = integ.Step(dyn, x, float64(i)*dt, dt)
		}
		return math.Hypot(x[0]-math.Cos(1), x[1]+math.Sin(1))
	}

	coarse, fine := final(10), final(20)
	ratio := coarse / fine
	if ratio < 14 || ratio > 18 {
		t.Errorf("halving dt reduced error by %.2f, expected ~16", ratio)
	}
}

func TestRK4StageTimes(t *testing.T) {
	dyn := &recordingDynamics{}
	integ := NewRK4()

	x, err := integ.Step(dyn, dynamo.State{0}, 2.0, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{2.0, 2.25, 2.25, 2.5}
	if len(dyn.times) != 4 {
		t.Fatalf("expected 4 stage evaluations, got %d", len(dyn.times))
	}
	for i := range want {
		if dyn.times[i] != want[i] {
			t.Errorf("stage %d evaluated at t=%v, want %v", i+1, dyn.times[i], want[i])
		}
	}

	if math.Abs(x[0]-0.5) > 1e-15 {
		t.Errorf("constant rate should integrate exactly, got %v", x[0])
	}
}

func TestRK4DoesNotAliasInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1.0, 0.0}

	next, err := integ.Step(&simpleDynamics{}, x, 0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if x[0] != 1.0 || x[1] != 0.0 {
		t.Error("Step mutated its input state")
	}

	again, _ := integ.Step(&simpleDynamics{}, next, 0.1, 0.1)
	if &again[0] == &next[0] {
		t.Error("Step reused the previous output buffer")
	}
}

func TestRK4RateDimensionMismatch(t *testing.T) {
	integ := NewRK4()
	_, err := integ.Step(&shortDynamics{}, dynamo.State{1, 2}, 0, 0.1)
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	dyn := &simpleDynamics{}
	final := func(steps int) float64 {
		integ := NewEuler()
		x := dynamo.State{1.0, 0.0}
		dt := 1.0 / float64(steps)
		for i := 0; i < steps; i++ {
			x, _ = integ.Step(dyn, x, float64(i)*dt, dt)
		}
		return math.Hypot(x[0]-math.Cos(1), x[1]+math.Sin(1))
	}

	ratio := final(100) / final(200)
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("halving dt reduced Euler error by %.2f, expected ~2", ratio)
	}

	if _, err := NewEuler().Step(&shortDynamics{}, dynamo.State{1, 2}, 0, 0.1); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
