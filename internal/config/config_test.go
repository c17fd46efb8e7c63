package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "deterministic" {
		t.Errorf("expected model deterministic, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetInitState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitState = InitStateConfig{V1: 1, B: 2, C: 3, V2: 4, D: 5, E: 6}

	state := cfg.GetInitState()
	if len(state) != models.Dim {
		t.Fatalf("expected %d states, got %d", models.Dim, len(state))
	}
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if state[i] != want {
			t.Errorf("state[%d]: expected %v, got %v", i, want, state[i])
		}
	}
}

func TestRegimesDefaultToSingleBundle(t *testing.T) {
	cfg := DefaultConfig()
	rs := cfg.Regimes()
	if rs.Pre != rs.Post {
		t.Error("expected post-cutoff bundle to mirror pre-cutoff without post_params")
	}
	if rs.Cutoff != models.DefaultCutoff {
		t.Errorf("expected cutoff %v, got %v", models.DefaultCutoff, rs.Cutoff)
	}
}

func TestTimeGrid(t *testing.T) {
	cfg := GetPreset("stochastic", "S0000")
	grid, err := cfg.TimeGrid()
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 841 {
		t.Errorf("expected 841 points, got %d", len(grid))
	}
	if grid[len(grid)-1] != 168 {
		t.Errorf("expected grid to end at 168, got %v", grid[len(grid)-1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative compartment", func(c *Config) { c.InitState.B = -5 }},
		{"probability above one", func(c *Config) { c.Params.P1 = 2 }},
		{"bad post bundle", func(c *Config) {
			post := c.Params
			post.Phi4 = 1.5
			c.PostParams = &post
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Params.Gamma2 = -1
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("stochastic", "S0101")

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.PostParams == nil || loaded.PostParams.Phi3 != 0.015 {
		t.Errorf("post params lost: %+v", loaded.PostParams)
	}
	if loaded.Params.Phi2 != 0.055 {
		t.Errorf("expected phi2 0.055, got %v", loaded.Params.Phi2)
	}
	if loaded.InitState.V1 != usUnaffiliated {
		t.Errorf("expected V1 %v, got %v", float64(usUnaffiliated), loaded.InitState.V1)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("model: stochastic\nparams:\n  k1: 0.3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "stochastic" {
		t.Errorf("expected model stochastic, got %s", cfg.Model)
	}
	if cfg.Params.K1 != 0.3 {
		t.Errorf("expected k1 0.3, got %v", cfg.Params.K1)
	}
	if cfg.Params.K2 != 0.5 {
		t.Errorf("expected default k2 0.5, got %v", cfg.Params.K2)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected default dt, got %v", cfg.Dt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG").String() != "DEBUG" {
		t.Error("expected debug level")
	}
	if ParseLevel("warning").String() != "WARN" {
		t.Error("expected warn level")
	}
	if ParseLevel("bogus").String() != "INFO" {
		t.Error("expected info fallback")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("POLSIM_DATA_DIR", "/tmp/polsim")
	t.Setenv("POLSIM_WORKERS", "3")

	e, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if e.DataDir != "/tmp/polsim" {
		t.Errorf("expected data dir from env, got %s", e.DataDir)
	}
	if e.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", e.Workers)
	}
	if e.LogLevel != "info" {
		t.Errorf("expected default log level, got %s", e.LogLevel)
	}

	t.Setenv("POLSIM_WORKERS", "many")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected parse error for non-numeric workers")
	}
}
