package analysis

import (
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

// Totals returns the country totals N1 = V1+B+C and N2 = V2+D+E.
func Totals(x dynamo.State) (n1, n2 float64) {
	n1 = x[models.V1] + x[models.B] + x[models.C]
	n2 = x[models.V2] + x[models.D] + x[models.E]
	return n1, n2
}

// Shares divides each compartment by its own country's total. A country
// with a non-positive total yields zero shares.
func Shares(x dynamo.State) [models.Dim]float64 {
	var s [models.Dim]float64
	n1, n2 := Totals(x)
	if n1 > 0 {
		s[models.V1] = x[models.V1] / n1
		s[models.B] = x[models.B] / n1
		s[models.C] = x[models.C] / n1
	}
	if n2 > 0 {
		s[models.V2] = x[models.V2] / n2
		s[models.D] = x[models.D] / n2
		s[models.E] = x[models.E] / n2
	}
	return s
}
