// Package ensemble runs independent stochastic replicates in parallel and
// summarizes them per time point.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/polsim/internal/dynamo"
)

var ErrNoReplicates = errors.New("ensemble: no replicate completed")

// Builder assembles a fresh solver for one replicate. The source it receives
// is owned by that replicate alone.
type Builder func(rng *rand.Rand) (*dynamo.Solver, error)

type Runner struct {
	Workers   int
	SeedStart int64
	Logger    *slog.Logger
}

type Replicate struct {
	Index  int
	Seed   int64
	Result *dynamo.Result
	Err    error
}

type Outcome struct {
	Times      []float64
	Replicates []Replicate
	Skipped    int
}

// Results returns the trajectories of the replicates that completed, in
// replicate order.
func (o *Outcome) Results() []*dynamo.Result {
	out := make([]*dynamo.Result, 0, len(o.Replicates)-o.Skipped)
	for _, r := range o.Replicates {
		if r.Result != nil {
			out = append(out, r.Result)
		}
	}
	return out
}

// Run solves n replicates over times. Replicate i is seeded with SeedStart+i,
// so the outcome does not depend on Workers or scheduling. A replicate whose
// solve fails is logged and skipped; build failures and cancellation abort
// the whole ensemble.
func (r *Runner) Run(ctx context.Context, n int, build Builder, times []float64) (*Outcome, error) {
	if n < 1 {
		return nil, fmt.Errorf("ensemble: need at least one replicate, got %d", n)
	}
	if err := dynamo.ValidateGrid(times); err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := r.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	reps := make([]Replicate, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		seed := r.SeedStart + int64(i)
		g.Go(func() error {
			solver, err := build(rand.New(rand.NewSource(seed)))
			if err != nil {
				return fmt.Errorf("replicate %d: %w", i, err)
			}

			rep := Replicate{Index: i, Seed: seed}
			rep.Result, rep.Err = solver.Solve(gctx, times)
			if rep.Err != nil {
				if errors.Is(rep.Err, context.Canceled) || errors.Is(rep.Err, context.DeadlineExceeded) {
					return rep.Err
				}
				logger.Warn("replicate skipped", "replicate", i, "seed", seed, "err", rep.Err)
			}
			reps[i] = rep
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Outcome{
		Times:      append([]float64(nil), times...),
		Replicates: reps,
	}
	var first error
	for _, rep := range reps {
		if rep.Err != nil {
			out.Skipped++
			if first == nil {
				first = rep.Err
			}
		}
	}
	if out.Skipped == n {
		return nil, fmt.Errorf("%w: %d of %d failed, first: %w", ErrNoReplicates, n, n, first)
	}

	logger.Debug("ensemble complete", "replicates", n, "skipped", out.Skipped, "workers", workers)
	return out, nil
}
