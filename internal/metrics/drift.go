package metrics

import (
	"math"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

// TotalsDrift tracks the largest relative departure of either country's
// total population from its value at the first observation.
type TotalsDrift struct {
	name     string
	n1, n2   float64
	maxDrift float64
	started  bool
}

func NewTotalsDrift() *TotalsDrift {
	return &TotalsDrift{name: "totals_drift"}
}

func (d *TotalsDrift) Name() string {
	return d.name
}

func (d *TotalsDrift) Observe(x dynamo.State, t float64) {
	n1 := x[models.V1] + x[models.B] + x[models.C]
	n2 := x[models.V2] + x[models.D] + x[models.E]
	if !d.started {
		d.n1, d.n2 = n1, n2
		d.started = true
		return
	}
	d.maxDrift = math.Max(d.maxDrift, relative(n1, d.n1))
	d.maxDrift = math.Max(d.maxDrift, relative(n2, d.n2))
}

func relative(v, ref float64) float64 {
	if ref == 0 {
		return math.Abs(v)
	}
	return math.Abs(v-ref) / math.Abs(ref)
}

func (d *TotalsDrift) Value() float64 {
	return d.maxDrift
}

func (d *TotalsDrift) Reset() {
	d.n1, d.n2 = 0, 0
	d.maxDrift = 0
	d.started = false
}
