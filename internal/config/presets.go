package config

import (
	"sort"

	"github.com/san-kum/polsim/internal/models"
)

// Presets reproduces the published figures: six deterministic panels and
// twelve stochastic US scenarios. Scenario codes S<a><b><cd> read:
//
//	a   parties B and C start level
//	b   phi2 raised to 0.055 throughout
//	cd  post-cutoff change: 01 phi3, 10 phi4, 11 all gamma raised to 0.015
var Presets = map[string]map[string]*Config{
	"deterministic": deterministicPresets(),
	"stochastic":    stochasticPresets(),
}

func deterministicPresets() map[string]*Config {
	symmetric := models.Symmetric(0.016, 0.5, 0.1, 0.01, 0.02)

	weakB := symmetric
	weakB.K1 = 0.4

	asym := symmetric
	asym.K1, asym.K2, asym.K3, asym.K4 = 0.6, 0.4, 0.6, 0.6
	asym.P1, asym.P2, asym.P3, asym.P4 = 0.2, 0.1, 0.1, 0.2
	asym.Phi1, asym.Phi2, asym.Phi3, asym.Phi4 = 0.01, 0.03, 0.015, 0.01

	asymPhi3 := asym
	asymPhi3.Phi3 = 0.03

	equal := uniformInit(1000)
	half := InitStateConfig{V1: 1000, B: 1000, C: 1000, V2: 500, D: 500, E: 500}
	large := InitStateConfig{V1: 10000, B: 10000, C: 10000, V2: 5000, D: 5000, E: 5000}

	panel := func(p models.Params, init InitStateConfig) *Config {
		return &Config{
			Model: "deterministic", Integrator: "rk4", Dt: 0.2, Duration: 200,
			Seed: DefaultSeed, InitState: init, Params: p,
			Cutoff: models.DefaultCutoff, Growth: models.DefaultGrowth,
		}
	}

	return map[string]*Config{
		"panel1": panel(symmetric, equal),
		"panel2": panel(symmetric, half),
		"panel3": panel(weakB, equal),
		"panel4": panel(weakB, half),
		"panel5": panel(asym, large),
		"panel6": panel(asymPhi3, large),
	}
}

// US scenario constants, in persons.
const (
	usUnaffiliated = 34650000
	usDem          = 22000000
	usRep          = 16000000
	usLevel        = 19291265
	worldBloc      = 50000000
)

func stochasticPresets() map[string]*Config {
	base := models.Params{
		Mu1: 0.017, Mu2: 0.017, Mu3: 0.017, Mu4: 0.017,
		MuB: 0.017, MuC: 0.017, MuD: 0.017, MuE: 0.017,
		K1: 0.55, K2: 0.55, K3: 0.1, K4: 0.1,
		P1: 0.15, P2: 0.15, P3: 0.1, P4: 0.1,
		Gamma1: 0.01, Gamma2: 0.01, Gamma3: 0.01, Gamma4: 0.01,
		Phi1: 0.05, Phi2: 0.05, Phi3: 0.01, Phi4: 0.01,
	}

	out := make(map[string]*Config, 12)
	for _, level := range []bool{false, true} {
		for _, phi2 := range []bool{false, true} {
			if level && phi2 {
				continue
			}
			for _, post := range []string{"00", "01", "10", "11"} {
				pre := base
				if phi2 {
					pre.Phi2 = 0.055
				}
				after := pre
				switch post {
				case "01":
					after.Phi3 = 0.015
				case "10":
					after.Phi4 = 0.015
				case "11":
					after.Gamma1, after.Gamma2, after.Gamma3, after.Gamma4 = 0.015, 0.015, 0.015, 0.015
				}

				init := InitStateConfig{V1: usUnaffiliated, B: usDem, C: usRep, V2: worldBloc, D: worldBloc, E: worldBloc}
				if level {
					init.B, init.C = usLevel, usLevel
				}

				name := "S" + bit(level) + bit(phi2) + post
				out[name] = &Config{
					Model: "stochastic", Integrator: "rk4", Dt: 0.2, Duration: 168,
					Seed: DefaultSeed, Replicates: DefaultReplicates,
					InitState: init, Params: pre, PostParams: &after,
					Cutoff: models.DefaultCutoff, Growth: models.DefaultGrowth,
				}
			}
		}
	}
	return out
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// FindPreset looks a preset up by name across all models.
func FindPreset(name string) *Config {
	for model := range Presets {
		if cfg := GetPreset(model, name); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
