package scenario

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xulfus/ai-world3/internal/world"
)

// RunConfig is the yaml surface for a reproducible run: a scenario name,
// horizon, step, seed and optional parameter overrides applied on top of the
// scenario.
type RunConfig struct {
	Scenario  string             `yaml:"scenario"`
	Horizon   float64            `yaml:"horizon"`
	Dt        float64            `yaml:"dt"`
	Seed      int64              `yaml:"seed"`
	Overrides map[string]float64 `yaml:"overrides,omitempty"`
}

// DefaultRunConfig matches the CLI defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{Scenario: string(LaissezFaire), Horizon: 100.0, Dt: 0.1}
}

// Load reads a RunConfig from a yaml file, filling unset fields from the
// defaults.
func Load(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes a RunConfig to a yaml file.
func Save(path string, cfg RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Params resolves the configured scenario plus overrides into a validated
// parameter set.
func (c RunConfig) Params() (world.Params, error) {
	name := Name(c.Scenario)
	if name == Custom {
		return BuildCustom(c.Overrides)
	}
	p, err := Build(name)
	if err != nil {
		return world.Params{}, err
	}
	if len(c.Overrides) > 0 {
		if err := p.Apply(c.Overrides); err != nil {
			return world.Params{}, err
		}
		if err := p.Validate(); err != nil {
			return world.Params{}, err
		}
	}
	return p, nil
}
