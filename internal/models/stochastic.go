package models

import (
	"math"

	"github.com/san-kum/polsim/internal/dynamo"
)

// NormalSource supplies standard normal draws. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// ZeroNoise is a NormalSource that always returns 0.
type ZeroNoise struct{}

func (ZeroNoise) NormFloat64() float64 { return 0 }

// Stochastic is the regime-switched model with time-varying growth and
// multiplicative noise. Each flow term X becomes X + X*sqrt(noiseDt)*Z with a
// fresh Z for every occurrence of every term on every evaluation.
//
// A Stochastic value owns its source and must not be shared between goroutines.
type Stochastic struct {
	regimes RegimeSet
	growth  GrowthLaw
	noiseDt float64
	scale   float64
	src     NormalSource
}

// NewStochastic builds the model. noiseDt is the outer step of the driver
// and sets the noise amplitude; a zero noiseDt or nil src disables noise.
func NewStochastic(regimes RegimeSet, growth GrowthLaw, noiseDt float64, src NormalSource) *Stochastic {
	s := &Stochastic{regimes: regimes, growth: growth, noiseDt: noiseDt, src: src}
	if noiseDt > 0 {
		s.scale = math.Sqrt(noiseDt)
	}
	return s
}

func (s *Stochastic) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	_, p := s.regimes.Active(t)
	r1, r2 := s.growth.Rates(t)

	f := identity
	if s.src != nil && s.scale > 0 {
		f = s.perturb
	}
	return flows(p, x, p.Mu1+r1, p.Mu3+r2, f)
}

func (s *Stochastic) perturb(v float64) float64 {
	return v + v*s.scale*s.src.NormFloat64()
}

func (s *Stochastic) StateDim() int { return Dim }

func (s *Stochastic) Regimes() RegimeSet { return s.regimes }

func (s *Stochastic) Growth() GrowthLaw { return s.growth }

func (s *Stochastic) NoiseDt() float64 { return s.noiseDt }

// GetParams reports the pre-cutoff bundle, with post-cutoff values suffixed "t".
func (s *Stochastic) GetParams() map[string]float64 {
	out := s.regimes.Pre.GetParams()
	for k, v := range s.regimes.Post.GetParams() {
		out[k+"t"] = v
	}
	out["cutoff"] = s.regimes.Cutoff
	return out
}
