package metrics

import (
	"math"

	"github.com/san-kum/polsim/internal/dynamo"
)

// MinCompartment records the smallest compartment value seen. Noise can push
// a compartment below zero; Negatives counts the states where that happened.
type MinCompartment struct {
	name      string
	min       float64
	negatives int
	samples   int
}

func NewMinCompartment() *MinCompartment {
	return &MinCompartment{
		name: "min_compartment",
		min:  math.Inf(1),
	}
}

func (m *MinCompartment) Name() string {
	return m.name
}

func (m *MinCompartment) Observe(x dynamo.State, t float64) {
	m.samples++
	negative := false
	for _, val := range x {
		if val < m.min {
			m.min = val
		}
		if val < 0 {
			negative = true
		}
	}
	if negative {
		m.negatives++
	}
}

func (m *MinCompartment) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinCompartment) Negatives() int {
	return m.negatives
}

func (m *MinCompartment) Reset() {
	m.min = math.Inf(1)
	m.negatives = 0
	m.samples = 0
}

// Defaults returns a fresh set of the standard population observers.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewTotalsDrift(),
		NewPartyGap(),
		NewMinCompartment(),
	}
}
