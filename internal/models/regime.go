package models

import "fmt"

type Regime int

const (
	PreCutoff Regime = iota
	PostCutoff
)

func (r Regime) String() string {
	switch r {
	case PreCutoff:
		return "pre"
	case PostCutoff:
		return "post"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// SelectRegime returns PreCutoff iff t < cutoff.
func SelectRegime(t, cutoff float64) Regime {
	if t < cutoff {
		return PreCutoff
	}
	return PostCutoff
}

// RegimeSet holds the two parameter bundles of a regime-switched model.
type RegimeSet struct {
	Pre    Params  `yaml:"pre"`
	Post   Params  `yaml:"post"`
	Cutoff float64 `yaml:"cutoff"`
}

// DefaultCutoff is the switch time used by the published scenarios.
const DefaultCutoff = 88.0

// Constant returns a set that uses p on both sides of the cutoff.
func Constant(p Params) RegimeSet {
	return RegimeSet{Pre: p, Post: p, Cutoff: DefaultCutoff}
}

// Active returns the bundle in force at time t.
func (rs *RegimeSet) Active(t float64) (Regime, *Params) {
	r := SelectRegime(t, rs.Cutoff)
	if r == PreCutoff {
		return r, &rs.Pre
	}
	return r, &rs.Post
}

func (rs *RegimeSet) Validate() error {
	if err := rs.Pre.Validate(); err != nil {
		return fmt.Errorf("pre-cutoff: %w", err)
	}
	if err := rs.Post.Validate(); err != nil {
		return fmt.Errorf("post-cutoff: %w", err)
	}
	return nil
}

// GrowthLaw gives the extra per capita inflow into each country's
// unaffiliated pool, r(t) = A - B*t.
type GrowthLaw struct {
	A1 float64 `yaml:"a1"`
	B1 float64 `yaml:"b1"`
	A2 float64 `yaml:"a2"`
	B2 float64 `yaml:"b2"`
}

// DefaultGrowth is r1 = 0.018 - 0.0001t, r2 = 0.022 - 0.0001t.
var DefaultGrowth = GrowthLaw{A1: 0.018, B1: 0.0001, A2: 0.022, B2: 0.0001}

func (g GrowthLaw) Rates(t float64) (r1, r2 float64) {
	return g.A1 - g.B1*t, g.A2 - g.B2*t
}
