package ensemble

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/polsim/internal/dynamo"
)

// Summary holds per-time, per-compartment statistics across replicates.
type Summary struct {
	Times  []float64
	Mean   []dynamo.State
	StdDev []dynamo.State
	Q05    []dynamo.State
	Q95    []dynamo.State
	Count  int
}

func Summarize(o *Outcome) (*Summary, error) {
	results := o.Results()
	if len(results) == 0 {
		return nil, ErrNoReplicates
	}

	steps := len(o.Times)
	dim := len(results[0].States[0])
	s := &Summary{
		Times:  append([]float64(nil), o.Times...),
		Mean:   make([]dynamo.State, steps),
		StdDev: make([]dynamo.State, steps),
		Q05:    make([]dynamo.State, steps),
		Q95:    make([]dynamo.State, steps),
		Count:  len(results),
	}

	sample := make([]float64, len(results))
	for n := 0; n < steps; n++ {
		s.Mean[n] = make(dynamo.State, dim)
		s.StdDev[n] = make(dynamo.State, dim)
		s.Q05[n] = make(dynamo.State, dim)
		s.Q95[n] = make(dynamo.State, dim)

		for j := 0; j < dim; j++ {
			for k, r := range results {
				sample[k] = r.States[n][j]
			}
			mean, sd := stat.MeanStdDev(sample, nil)
			if len(sample) < 2 {
				sd = 0
			}
			sort.Float64s(sample)
			s.Mean[n][j] = mean
			s.StdDev[n][j] = sd
			s.Q05[n][j] = stat.Quantile(0.05, stat.Empirical, sample, nil)
			s.Q95[n][j] = stat.Quantile(0.95, stat.Empirical, sample, nil)
		}
	}
	return s, nil
}

// MeanResult packs the mean trajectory as a Result.
func (s *Summary) MeanResult() *dynamo.Result {
	return &dynamo.Result{
		States:     s.Mean,
		Times:      s.Times,
		Metrics:    map[string]float64{"replicates": float64(s.Count)},
		StepsTaken: len(s.Times) - 1,
	}
}
