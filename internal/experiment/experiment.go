package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/polsim/internal/config"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/ensemble"
)

// Experiment binds a validated config to a registry and a time grid.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	times    []float64
}

func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := registry.models[cfg.Model]; !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	if _, ok := registry.integrators[cfg.Integrator]; !ok {
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}
	times, err := cfg.TimeGrid()
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, registry: registry, times: times}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Times() []float64 { return e.times }

// Params reports the rates of the configured model, as recorded in run
// metadata. Regime-switched models add post-cutoff keys suffixed "t" and the
// cutoff itself.
func (e *Experiment) Params() (map[string]float64, error) {
	sys, err := e.registry.GetModel(e.cfg, nil)
	if err != nil {
		return nil, err
	}
	if r, ok := sys.(dynamo.ParamReporter); ok {
		return r.GetParams(), nil
	}
	return e.cfg.Params.GetParams(), nil
}

// NewSolver assembles a solver with a fresh model, integrator and default
// metrics, its initial condition already set.
func (e *Experiment) NewSolver(rng *rand.Rand) (*dynamo.Solver, error) {
	sys, err := e.registry.GetModel(e.cfg, rng)
	if err != nil {
		return nil, err
	}
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	solver := dynamo.NewSolver(sys, integ)
	for _, m := range e.registry.DefaultMetrics() {
		solver.AddMetric(m)
	}
	if err := solver.SetInitialCondition(e.cfg.GetInitState()); err != nil {
		return nil, err
	}
	return solver, nil
}

// Run performs a single run seeded with the config's seed.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	solver, err := e.NewSolver(rand.New(rand.NewSource(e.cfg.Seed)))
	if err != nil {
		return nil, err
	}
	return solver.Solve(ctx, e.times)
}

// RunEnsemble solves cfg.Replicates independent replicates through runner.
func (e *Experiment) RunEnsemble(ctx context.Context, runner *ensemble.Runner) (*ensemble.Outcome, error) {
	n := e.cfg.Replicates
	if n < 1 {
		n = 1
	}
	return runner.Run(ctx, n, e.NewSolver, e.times)
}
