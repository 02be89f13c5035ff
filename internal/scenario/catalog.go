// Package scenario holds the named policy/technology presets and the yaml
// run-configuration surface. Each preset is an override table merged onto a
// fresh copy of the defaults; no invocation ever touches shared state.
package scenario

import (
	"fmt"
	"sort"

	"github.com/xulfus/ai-world3/internal/world"
)

// Name identifies a catalog entry.
type Name string

const (
	LaissezFaire    Name = "laissez-faire"
	Nordic          Name = "nordic"
	Singularity     Name = "singularity"
	GreenTransition Name = "green-transition"
	Extraction      Name = "extraction"
	Custom          Name = "custom"
)

// Overrides maps parameter names onto replacement values.
type Overrides map[string]float64

// catalog enumerates every preset as data, not branches. Factory functions
// return fresh maps so a caller mutating its copy cannot corrupt the table.
var catalog = map[Name]func() Overrides{
	// No policy intervention: market-only job creation, no emergency tax.
	LaissezFaire: func() Overrides {
		return Overrides{
			"stability_threshold": 0.0,
			"retrain_rate":        0.005,
			"job_creation_rate":   0.015,
		}
	},
	// Strong welfare state: early tax trigger, heavy retraining, efficient
	// institutions, slightly cleaner technology.
	Nordic: func() Overrides {
		return Overrides{
			"stability_threshold": 0.85,
			"retrain_rate":        0.05,
			"retrain_throughput":  0.25,
			"job_creation_rate":   0.03,
			"emission_rate":       0.0006,
			"absorption_capacity": 0.014,
		}
	},
	// Exponentially accelerating automation; policy responds but cannot
	// keep pace.
	Singularity: func() Overrides {
		return Overrides{
			"stability_threshold": 0.70,
			"retrain_rate":        0.04,
			"retrain_throughput":  0.10,
			"automation_growth":   0.03,
			"emission_rate":       0.0012,
			"absorption_capacity": 0.010,
		}
	},
	// Clean technology path: sustainability through learning curves rather
	// than extreme fixed emission rates.
	GreenTransition: func() Overrides {
		return Overrides{
			"stability_threshold":       0.80,
			"retrain_rate":              0.04,
			"job_creation_rate":         0.025,
			"emission_improvement_rate": 0.01,
			"resource_efficiency_rate":  0.01,
			"depreciation":              0.06,
			"green_investment_factor":   1.5,
		}
	},
	// Maximum resource exploitation, no policy response, no efficiency
	// improvement.
	Extraction: func() Overrides {
		return Overrides{
			"stability_threshold":       0.0,
			"retrain_rate":              0.005,
			"resource_use_rate":         0.15,
			"resource_scarcity_factor":  8.0,
			"emission_rate":             0.002,
			"absorption_capacity":       0.006,
			"emission_improvement_rate": 0.0,
			"resource_efficiency_rate":  0.0,
		}
	},
}

// List returns the preset names, sorted. "custom" is not listed: it is a
// constructor, not a preset.
func List() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// Presets returns the override table of a named preset, for auditing.
func Presets(name Name) (Overrides, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", world.ErrUnknownScenario, name)
	}
	return fn(), nil
}

// Build returns a fresh, validated parameter set for a named preset.
func Build(name Name) (world.Params, error) {
	fn, ok := catalog[name]
	if !ok {
		return world.Params{}, fmt.Errorf("%w: %q", world.ErrUnknownScenario, name)
	}
	return build(fn())
}

// BuildCustom merges arbitrary overrides onto the defaults. Unknown keys and
// out-of-range values are rejected before anything runs; the defaults are
// never partially applied.
func BuildCustom(overrides Overrides) (world.Params, error) {
	return build(overrides)
}

func build(overrides Overrides) (world.Params, error) {
	p := world.DefaultParams()
	if err := p.Apply(map[string]float64(overrides)); err != nil {
		return world.Params{}, err
	}
	if err := p.Validate(); err != nil {
		return world.Params{}, err
	}
	return p, nil
}
