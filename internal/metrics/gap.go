package metrics

import (
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

// PartyGap reports (B-C)/N1 at the last observed state. Positive values mean
// party B leads in country 1.
type PartyGap struct {
	name string
	gap  float64
}

func NewPartyGap() *PartyGap {
	return &PartyGap{name: "party_gap"}
}

func (g *PartyGap) Name() string {
	return g.name
}

func (g *PartyGap) Observe(x dynamo.State, t float64) {
	n1 := x[models.V1] + x[models.B] + x[models.C]
	if n1 == 0 {
		g.gap = 0
		return
	}
	g.gap = (x[models.B] - x[models.C]) / n1
}

func (g *PartyGap) Value() float64 {
	return g.gap
}

func (g *PartyGap) Reset() {
	g.gap = 0
}
