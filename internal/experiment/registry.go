package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/polsim/internal/config"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/integrators"
	"github.com/san-kum/polsim/internal/metrics"
	"github.com/san-kum/polsim/internal/models"
)

// ModelFactory builds a system from a config. rng is nil for noise-free runs.
type ModelFactory func(cfg *config.Config, rng *rand.Rand) (dynamo.System, error)

type Registry struct {
	models      map[string]ModelFactory
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]ModelFactory),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.models["deterministic"] = func(cfg *config.Config, _ *rand.Rand) (dynamo.System, error) {
		return models.NewDeterministic(cfg.Params), nil
	}
	r.models["stochastic"] = func(cfg *config.Config, rng *rand.Rand) (dynamo.System, error) {
		var src models.NormalSource
		if rng != nil {
			src = rng
		}
		return models.NewStochastic(cfg.Regimes(), cfg.Growth, cfg.Dt, src), nil
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetModel(cfg *config.Config, rng *rand.Rand) (dynamo.System, error) {
	fn, ok := r.models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	return fn(cfg, rng)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// IsStochastic reports whether the named model consumes random draws.
func (r *Registry) IsStochastic(model string) bool {
	return model == "stochastic"
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return metrics.Defaults()
}
