package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

const (
	DefaultDt         = 0.2
	DefaultDuration   = 200.0
	DefaultReplicates = 10
	DefaultSeed       = 1
	DefaultPopulation = 1000.0
)

type Config struct {
	Model      string  `yaml:"model"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	T0         float64 `yaml:"t0"`
	Duration   float64 `yaml:"duration"`
	Seed       int64   `yaml:"seed"`
	Replicates int     `yaml:"replicates"`
	Workers    int     `yaml:"workers"`

	InitState InitStateConfig `yaml:"init_state"`

	// Params drives the deterministic model and the pre-cutoff regime.
	// PostParams defaults to Params when omitted.
	Params     models.Params    `yaml:"params"`
	PostParams *models.Params   `yaml:"post_params,omitempty"`
	Cutoff     float64          `yaml:"cutoff"`
	Growth     models.GrowthLaw `yaml:"growth"`

	Reference string `yaml:"reference,omitempty"`
}

type InitStateConfig struct {
	V1 float64 `yaml:"v1"`
	B  float64 `yaml:"b"`
	C  float64 `yaml:"c"`
	V2 float64 `yaml:"v2"`
	D  float64 `yaml:"d"`
	E  float64 `yaml:"e"`
}

func uniformInit(n float64) InitStateConfig {
	return InitStateConfig{V1: n, B: n, C: n, V2: n, D: n, E: n}
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "deterministic",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Seed:       DefaultSeed,
		Replicates: DefaultReplicates,
		InitState:  uniformInit(DefaultPopulation),
		Params:     models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02),
		Cutoff:     models.DefaultCutoff,
		Growth:     models.DefaultGrowth,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInitState() dynamo.State {
	s := c.InitState
	return dynamo.State{s.V1, s.B, s.C, s.V2, s.D, s.E}
}

// Regimes returns the pre/post-cutoff parameter bundles.
func (c *Config) Regimes() models.RegimeSet {
	post := c.Params
	if c.PostParams != nil {
		post = *c.PostParams
	}
	return models.RegimeSet{Pre: c.Params, Post: post, Cutoff: c.Cutoff}
}

// TimeGrid covers [T0, T0+Duration] in steps of Dt.
func (c *Config) TimeGrid() ([]float64, error) {
	return dynamo.UniformGrid(c.T0, c.T0+c.Duration, c.Dt)
}

// Clone returns a deep copy, so presets can be tweaked without leaking edits.
func (c *Config) Clone() *Config {
	out := *c
	if c.PostParams != nil {
		post := *c.PostParams
		out.PostParams = &post
	}
	return &out
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if c.Replicates < 0 {
		return fmt.Errorf("config: replicates must not be negative, got %d", c.Replicates)
	}
	for i, v := range c.GetInitState() {
		if v < 0 {
			return fmt.Errorf("%w: initial %s is %g", dynamo.ErrParameterBounds, models.CompartmentNames[i], v)
		}
	}
	rs := c.Regimes()
	return rs.Validate()
}
