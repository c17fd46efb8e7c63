package dynamo

import (
	"fmt"
	"math"
)

// ValidateGrid reports ErrInvalidTimeGrid unless times holds at least two
// finite, strictly increasing points.
func ValidateGrid(times []float64) error {
	if len(times) < 2 {
		return fmt.Errorf("%w: got %d points", ErrInvalidTimeGrid, len(times))
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: non-finite time at index %d", ErrInvalidTimeGrid, i)
		}
		if i > 0 && t <= times[i-1] {
			return fmt.Errorf("%w: t[%d]=%g does not exceed t[%d]=%g", ErrInvalidTimeGrid, i, t, i-1, times[i-1])
		}
	}
	return nil
}

// Linspace returns n evenly spaced points from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// UniformGrid covers [t0, t1] with round((t1-t0)/dt) intervals, so the spacing
// equals dt whenever the span is a whole multiple of it.
func UniformGrid(t0, t1, dt float64) ([]float64, error) {
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidTimeGrid, dt)
	}
	if t1 <= t0 {
		return nil, fmt.Errorf("%w: end time %g not after start %g", ErrInvalidTimeGrid, t1, t0)
	}
	steps := int(math.Round((t1 - t0) / dt))
	if steps < 1 {
		steps = 1
	}
	return Linspace(t0, t1, steps+1), nil
}
