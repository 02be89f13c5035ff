package sim

import "fmt"

// Columns is the tabular contract consumed by the storage and plotting
// collaborators: time, the six stocks, then every derived flow.
var Columns = []string{
	"time",
	"k_ai",
	"labor_u",
	"stability",
	"public_pool",
	"environment",
	"resources",
	"labor_force",
	"unemployment_rate",
	"tax_rate",
	"raw_output",
	"output",
	"tax_revenue",
	"emissions",
	"absorption",
	"displacement",
	"job_creation",
	"retraining",
	"resource_cost_multiplier",
}

// Record flattens one row in Columns order.
func (s Step) Record() []float64 {
	return []float64{
		s.Time,
		s.Stocks.KAI,
		s.Stocks.LaborU,
		s.Stocks.Stability,
		s.Stocks.PublicPool,
		s.Stocks.Environment,
		s.Stocks.Resources,
		s.Flows.LaborForce,
		s.Flows.Unemployment,
		s.Flows.TaxRate,
		s.Flows.RawOutput,
		s.Flows.Output,
		s.Flows.TaxRevenue,
		s.Flows.Emissions,
		s.Flows.Absorption,
		s.Flows.Displacement,
		s.Flows.JobCreation,
		s.Flows.Retraining,
		s.Flows.CostMultiplier,
	}
}

// Series extracts one named column across the whole trajectory.
func (tr *Trajectory) Series(column string) ([]float64, error) {
	idx := -1
	for i, name := range Columns {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column: %q", column)
	}
	out := make([]float64, len(tr.Steps))
	for i, step := range tr.Steps {
		out[i] = step.Record()[idx]
	}
	return out, nil
}

// Times returns the time column.
func (tr *Trajectory) Times() []float64 {
	out := make([]float64, len(tr.Steps))
	for i, step := range tr.Steps {
		out[i] = step.Time
	}
	return out
}
