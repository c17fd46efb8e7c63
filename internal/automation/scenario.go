package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/polsim/internal/config"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/experiment"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a named preset (or the defaults) and applies
// overrides. Params apply to both regimes; PostParams only after the cutoff.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	Seed       int64              `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
	PostParams map[string]float64 `yaml:"post_params"`
	SaveAs     string             `yaml:"save_as"`
}

type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *dynamo.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve builds the config a step describes.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.FindPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := applyParam(cfg, k, v); err != nil {
			return nil, err
		}
	}
	if len(s.PostParams) > 0 {
		post := cfg.Regimes().Post
		for k, v := range s.PostParams {
			if err := post.SetParam(k, v); err != nil {
				return nil, err
			}
		}
		cfg.PostParams = &post
	}
	return cfg, nil
}

// RunScenario executes every step in order, one seeded run per step.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "model", cfg.Model, "preset", step.Preset)

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}
