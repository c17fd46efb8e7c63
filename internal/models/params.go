package models

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/polsim/internal/dynamo"
)

// Compartment indices into a state vector.
const (
	V1 = iota
	B
	C
	V2
	D
	E

	Dim = 6
)

var CompartmentNames = [Dim]string{"V1", "B", "C", "V2", "D", "E"}

var ErrUnknownParam = errors.New("models: unknown parameter")

// Params is one complete bundle of rates. Index 1..4 in the contact,
// probability, leakage and recruitment rates refers to parties B, C, D, E.
type Params struct {
	// Entry and exit rates of the unaffiliated pools.
	Mu1 float64 `yaml:"mu1"`
	Mu2 float64 `yaml:"mu2"`
	Mu3 float64 `yaml:"mu3"`
	Mu4 float64 `yaml:"mu4"`

	// Exit rates of each party.
	MuB float64 `yaml:"muB"`
	MuC float64 `yaml:"muC"`
	MuD float64 `yaml:"muD"`
	MuE float64 `yaml:"muE"`

	// Contacts per capita per unit time.
	K1 float64 `yaml:"k1"`
	K2 float64 `yaml:"k2"`
	K3 float64 `yaml:"k3"`
	K4 float64 `yaml:"k4"`

	// Conversion probability per contact.
	P1 float64 `yaml:"p1"`
	P2 float64 `yaml:"p2"`
	P3 float64 `yaml:"p3"`
	P4 float64 `yaml:"p4"`

	// Per capita leakage back to the unaffiliated pool.
	Gamma1 float64 `yaml:"gamma1"`
	Gamma2 float64 `yaml:"gamma2"`
	Gamma3 float64 `yaml:"gamma3"`
	Gamma4 float64 `yaml:"gamma4"`

	// Per capita recruitment from the rival party.
	Phi1 float64 `yaml:"phi1"`
	Phi2 float64 `yaml:"phi2"`
	Phi3 float64 `yaml:"phi3"`
	Phi4 float64 `yaml:"phi4"`
}

// Symmetric returns a bundle where every party and country shares the same rates.
func Symmetric(mu, k, p, gamma, phi float64) Params {
	return Params{
		Mu1: mu, Mu2: mu, Mu3: mu, Mu4: mu,
		MuB: mu, MuC: mu, MuD: mu, MuE: mu,
		K1: k, K2: k, K3: k, K4: k,
		P1: p, P2: p, P3: p, P4: p,
		Gamma1: gamma, Gamma2: gamma, Gamma3: gamma, Gamma4: gamma,
		Phi1: phi, Phi2: phi, Phi3: phi, Phi4: phi,
	}
}

func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		"mu1": &p.Mu1, "mu2": &p.Mu2, "mu3": &p.Mu3, "mu4": &p.Mu4,
		"muB": &p.MuB, "muC": &p.MuC, "muD": &p.MuD, "muE": &p.MuE,
		"k1": &p.K1, "k2": &p.K2, "k3": &p.K3, "k4": &p.K4,
		"p1": &p.P1, "p2": &p.P2, "p3": &p.P3, "p4": &p.P4,
		"gamma1": &p.Gamma1, "gamma2": &p.Gamma2, "gamma3": &p.Gamma3, "gamma4": &p.Gamma4,
		"phi1": &p.Phi1, "phi2": &p.Phi2, "phi3": &p.Phi3, "phi4": &p.Phi4,
	}
}

func (p *Params) Get(name string) (float64, bool) {
	ptr, ok := p.fields()[name]
	if !ok {
		return 0, false
	}
	return *ptr, true
}

func (p *Params) SetParam(name string, value float64) error {
	ptr, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*ptr = value
	return nil
}

func (p *Params) GetParams() map[string]float64 {
	out := make(map[string]float64, 24)
	for k, ptr := range p.fields() {
		out[k] = *ptr
	}
	return out
}

// Names lists every parameter name in sorted order.
func (p *Params) Names() []string {
	f := p.fields()
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every rate is finite and non-negative and that
// probabilities and recruitment fractions lie in [0, 1].
func (p *Params) Validate() error {
	for _, name := range p.Names() {
		v, _ := p.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s=%g", dynamo.ErrParameterBounds, name, v)
		}
	}
	unit := map[string]float64{
		"p1": p.P1, "p2": p.P2, "p3": p.P3, "p4": p.P4,
		"phi1": p.Phi1, "phi2": p.Phi2, "phi3": p.Phi3, "phi4": p.Phi4,
	}
	for name, v := range unit {
		if v > 1 {
			return fmt.Errorf("%w: %s=%g exceeds 1", dynamo.ErrParameterBounds, name, v)
		}
	}
	return nil
}
