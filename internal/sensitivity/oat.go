package sensitivity

import (
	"sort"

	"github.com/xulfus/ai-world3/internal/sim"
	"github.com/xulfus/ai-world3/internal/world"
)

// OATResult is one row of a one-at-a-time sweep: a single parameter moved to
// one grid value with everything else held at baseline.
type OATResult struct {
	Param   string
	Value   float64
	Summary Summary
}

// OATSweep runs the grid for a single parameter.
func OATSweep(base world.Params, param string, values []float64, cfg sim.Config) ([]OATResult, error) {
	if _, err := base.Value(param); err != nil {
		return nil, err
	}
	rows := make([]OATResult, 0, len(values))
	for _, v := range values {
		p := base
		if err := p.Set(param, v); err != nil {
			return nil, err
		}
		tr, err := sim.Run(p, cfg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, OATResult{Param: param, Value: v, Summary: Summarize(tr)})
	}
	return rows, nil
}

// MultiOAT sweeps several parameters, each against its own grid, in sorted
// parameter order.
func MultiOAT(base world.Params, grids map[string][]float64, cfg sim.Config) ([]OATResult, error) {
	params := make([]string, 0, len(grids))
	for param := range grids {
		params = append(params, param)
	}
	sort.Strings(params)

	var rows []OATResult
	for _, param := range params {
		r, err := OATSweep(base, param, grids[param], cfg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r...)
	}
	return rows, nil
}

// DefaultOATGrids is the documented sweep of the most policy-relevant
// parameters.
func DefaultOATGrids() map[string][]float64 {
	return map[string][]float64{
		"automation_speed":    {0.02, 0.03, 0.04, 0.05, 0.06, 0.08, 0.10},
		"churn_rate":          {0.0, 0.005, 0.01, 0.015, 0.02, 0.03},
		"retrain_rate":        {0.0, 0.01, 0.02, 0.03, 0.05, 0.08},
		"job_creation_rate":   {0.005, 0.01, 0.015, 0.02, 0.03, 0.04},
		"stability_threshold": {0.0, 0.3, 0.5, 0.7, 0.85, 0.95},
		"emission_rate":       {0.0002, 0.0005, 0.0008, 0.0012, 0.002},
		"resource_use_rate":   {0.01, 0.03, 0.05, 0.10, 0.15},
	}
}
