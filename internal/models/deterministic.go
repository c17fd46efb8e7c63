package models

import "github.com/san-kum/polsim/internal/dynamo"

// Deterministic is the autonomous contagion model with a fixed parameter bundle.
type Deterministic struct {
	params Params
}

func NewDeterministic(p Params) *Deterministic {
	return &Deterministic{params: p}
}

func (m *Deterministic) Derive(x dynamo.State, _ float64) (dynamo.State, error) {
	return flows(&m.params, x, m.params.Mu1, m.params.Mu3, identity)
}

func (m *Deterministic) StateDim() int { return Dim }

func (m *Deterministic) Params() Params { return m.params }

func (m *Deterministic) GetParams() map[string]float64 { return m.params.GetParams() }
