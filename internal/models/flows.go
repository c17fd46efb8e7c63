package models

import (
	"fmt"

	"github.com/san-kum/polsim/internal/dynamo"
)

// flows evaluates the right-hand side of the contagion equations. entry1 and
// entry3 are the per capita inflows into V1 and V2. Every contact, leakage and
// recruitment term passes through f exactly once per occurrence; demographic
// entry and exit terms do not.
func flows(p *Params, x dynamo.State, entry1, entry3 float64, f func(float64) float64) (dynamo.State, error) {
	if len(x) != Dim {
		return nil, fmt.Errorf("%w: state has %d components, want %d", dynamo.ErrDimensionMismatch, len(x), Dim)
	}

	v1, b, c := x[V1], x[B], x[C]
	v2, d, e := x[V2], x[D], x[E]

	n1 := v1 + b + c
	n2 := v2 + d + e
	if !(n1 > 0) {
		return nil, fmt.Errorf("%w: country 1 total is %g", dynamo.ErrDegenerateState, n1)
	}
	if !(n2 > 0) {
		return nil, fmt.Errorf("%w: country 2 total is %g", dynamo.ErrDegenerateState, n2)
	}

	sB, sC := b/n1, c/n1
	sD, sE := d/n2, e/n2

	kp1 := p.K1 * p.P1
	kp2 := p.K2 * p.P2
	kp3 := p.K3 * p.P3
	kp4 := p.K4 * p.P4

	dx := make(dynamo.State, Dim)

	dx[V1] = entry1*n1 -
		f(kp1*v1*sB) - f((1-kp1)*kp3*v1*sD) -
		f(kp2*v1*sC) - f((1-kp2)*kp4*v1*sE) -
		p.Mu2*v1 +
		f(p.Gamma1*b) + f(p.Gamma2*c)

	dx[B] = f(kp1*v1*sB) + f((1-kp1)*kp3*v1*sD) -
		f(p.Phi2*b*sC) - f((1-p.Phi2)*p.Phi4*b*sE) +
		f(p.Phi1*c*sB) + f((1-p.Phi1)*p.Phi3*c*sD) -
		p.MuB*b - f(p.Gamma1*b)

	dx[C] = f(kp2*v1*sC) + f((1-kp2)*kp4*v1*sE) -
		f(p.Phi1*c*sB) - f((1-p.Phi1)*p.Phi3*c*sD) +
		f(p.Phi2*b*sC) + f((1-p.Phi2)*p.Phi4*b*sE) -
		p.MuC*c - f(p.Gamma2*c)

	dx[V2] = entry3*n2 -
		f(kp3*v2*sD) - f((1-kp3)*kp1*v2*sB) -
		f(kp4*v2*sE) - f((1-kp4)*kp2*v2*sC) -
		p.Mu4*v2 +
		f(p.Gamma3*d) + f(p.Gamma4*e)

	dx[D] = f(kp3*v2*sD) + f((1-kp3)*kp1*v2*sB) -
		f(p.Phi4*d*sE) - f((1-p.Phi4)*p.Phi2*d*sC) +
		f(p.Phi3*e*sD) + f((1-p.Phi3)*p.Phi1*e*sB) -
		p.MuD*d - f(p.Gamma3*d)

	dx[E] = f(kp4*v2*sE) + f((1-kp4)*kp2*v2*sC) -
		f(p.Phi3*e*sD) - f((1-p.Phi3)*p.Phi1*e*sB) +
		f(p.Phi4*d*sE) + f((1-p.Phi4)*p.Phi2*d*sC) -
		p.MuE*e - f(p.Gamma4*e)

	return dx, nil
}

func identity(v float64) float64 { return v }
