package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/polsim/internal/analysis"
	"github.com/san-kum/polsim/internal/config"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/experiment"
)

// ParameterSweep varies one named rate across a range. The value is applied
// to both regimes and every run is noise-free.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	Logger   *slog.Logger
}

type SweepResult struct {
	ParamValue  float64
	FinalState  dynamo.State
	FinalShares [6]float64
	TotalsDrift float64
}

// RunSweep executes the sweep and returns one result per value, in order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep: need at least one step, got %d", sweep.NumSteps)
	}
	logger := sweep.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := applyParam(cfg, sweep.Param, paramVal); err != nil {
			return nil, err
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, paramVal, err)
		}
		solver, err := exp.NewSolver(nil)
		if err != nil {
			return nil, err
		}
		result, err := solver.Solve(ctx, exp.Times())
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, paramVal, err)
		}

		final := result.Final()
		results = append(results, SweepResult{
			ParamValue:  paramVal,
			FinalState:  final,
			FinalShares: analysis.Shares(final),
			TotalsDrift: result.Metrics["totals_drift"],
		})

		logger.Debug("sweep point", "index", i+1, "of", sweep.NumSteps, "param", sweep.Param, "value", paramVal)
	}

	return results, nil
}

// applyParam sets name on the pre-cutoff bundle and, if present, the
// post-cutoff bundle.
func applyParam(cfg *config.Config, name string, value float64) error {
	var tunables []dynamo.Configurable
	tunables = append(tunables, &cfg.Params)
	if cfg.PostParams != nil {
		tunables = append(tunables, cfg.PostParams)
	}
	for _, t := range tunables {
		if err := t.SetParam(name, value); err != nil {
			return err
		}
	}
	return nil
}
