package sensitivity

import (
	"fmt"
	"math"

	"github.com/xulfus/ai-world3/internal/sim"
)

// Collapse thresholds for the first-crossing metrics.
const (
	stabilityCollapseLevel = 0.01
	envCollapseLevel       = 0.1
	resourceDepletionLevel = 1.0
)

// Summary condenses one trajectory into the scalar metrics the analyses
// correlate against. Collapse years are +Inf when the threshold was never
// crossed.
type Summary struct {
	FinalStability    float64
	FinalKAI          float64
	FinalOutput       float64
	FinalEnvironment  float64
	FinalResources    float64
	FinalUnemployment float64
	FinalTaxRate      float64

	MinStability    float64
	MaxUnemployment float64
	PeakKAI         float64
	MinEnvironment  float64

	StabilityCollapseYear float64
	EnvCollapseYear       float64
	ResourceDepletionYear float64
}

// MetricNames lists every summary metric addressable by name.
var MetricNames = []string{
	"final_stability",
	"final_k_ai",
	"final_output",
	"final_environment",
	"final_resources",
	"final_unemployment_rate",
	"final_tax_rate",
	"min_stability",
	"max_unemployment_rate",
	"peak_k_ai",
	"min_environment",
	"stability_collapse_year",
	"env_collapse_year",
	"resource_depletion_year",
}

// Metric returns one summary value by name.
func (s Summary) Metric(name string) (float64, error) {
	switch name {
	case "final_stability":
		return s.FinalStability, nil
	case "final_k_ai":
		return s.FinalKAI, nil
	case "final_output":
		return s.FinalOutput, nil
	case "final_environment":
		return s.FinalEnvironment, nil
	case "final_resources":
		return s.FinalResources, nil
	case "final_unemployment_rate":
		return s.FinalUnemployment, nil
	case "final_tax_rate":
		return s.FinalTaxRate, nil
	case "min_stability":
		return s.MinStability, nil
	case "max_unemployment_rate":
		return s.MaxUnemployment, nil
	case "peak_k_ai":
		return s.PeakKAI, nil
	case "min_environment":
		return s.MinEnvironment, nil
	case "stability_collapse_year":
		return s.StabilityCollapseYear, nil
	case "env_collapse_year":
		return s.EnvCollapseYear, nil
	case "resource_depletion_year":
		return s.ResourceDepletionYear, nil
	}
	return 0, fmt.Errorf("unknown metric: %q", name)
}

// Summarize scans a trajectory for final values, extrema and first
// threshold crossings.
func Summarize(tr *sim.Trajectory) Summary {
	final := tr.Final()
	s := Summary{
		FinalStability:    final.Stocks.Stability,
		FinalKAI:          final.Stocks.KAI,
		FinalOutput:       final.Flows.Output,
		FinalEnvironment:  final.Stocks.Environment,
		FinalResources:    final.Stocks.Resources,
		FinalUnemployment: final.Flows.Unemployment,
		FinalTaxRate:      final.Flows.TaxRate,

		MinStability:   math.Inf(1),
		MinEnvironment: math.Inf(1),

		StabilityCollapseYear: math.Inf(1),
		EnvCollapseYear:       math.Inf(1),
		ResourceDepletionYear: math.Inf(1),
	}

	for _, step := range tr.Steps {
		s.MinStability = math.Min(s.MinStability, step.Stocks.Stability)
		s.MinEnvironment = math.Min(s.MinEnvironment, step.Stocks.Environment)
		s.MaxUnemployment = math.Max(s.MaxUnemployment, step.Flows.Unemployment)
		s.PeakKAI = math.Max(s.PeakKAI, step.Stocks.KAI)

		if math.IsInf(s.StabilityCollapseYear, 1) && step.Stocks.Stability <= stabilityCollapseLevel {
			s.StabilityCollapseYear = step.Time
		}
		if math.IsInf(s.EnvCollapseYear, 1) && step.Stocks.Environment <= envCollapseLevel {
			s.EnvCollapseYear = step.Time
		}
		if math.IsInf(s.ResourceDepletionYear, 1) && step.Stocks.Resources <= resourceDepletionLevel {
			s.ResourceDepletionYear = step.Time
		}
	}
	return s
}
