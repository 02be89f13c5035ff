package sensitivity

import (
	"encoding/json"
	"math"
)

// summaryJSON is the wire form of Summary. The collapse years can be +Inf
// ("never"), which encoding/json refuses, so they travel as nullable fields.
type summaryJSON struct {
	FinalStability    float64 `json:"final_stability"`
	FinalKAI          float64 `json:"final_k_ai"`
	FinalOutput       float64 `json:"final_output"`
	FinalEnvironment  float64 `json:"final_environment"`
	FinalResources    float64 `json:"final_resources"`
	FinalUnemployment float64 `json:"final_unemployment_rate"`
	FinalTaxRate      float64 `json:"final_tax_rate"`

	MinStability    float64 `json:"min_stability"`
	MaxUnemployment float64 `json:"max_unemployment_rate"`
	PeakKAI         float64 `json:"peak_k_ai"`
	MinEnvironment  float64 `json:"min_environment"`

	StabilityCollapseYear *float64 `json:"stability_collapse_year"`
	EnvCollapseYear       *float64 `json:"env_collapse_year"`
	ResourceDepletionYear *float64 `json:"resource_depletion_year"`
}

func yearOut(v float64) *float64 {
	if math.IsInf(v, 1) {
		return nil
	}
	return &v
}

func yearIn(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		FinalStability:        s.FinalStability,
		FinalKAI:              s.FinalKAI,
		FinalOutput:           s.FinalOutput,
		FinalEnvironment:      s.FinalEnvironment,
		FinalResources:        s.FinalResources,
		FinalUnemployment:     s.FinalUnemployment,
		FinalTaxRate:          s.FinalTaxRate,
		MinStability:          s.MinStability,
		MaxUnemployment:       s.MaxUnemployment,
		PeakKAI:               s.PeakKAI,
		MinEnvironment:        s.MinEnvironment,
		StabilityCollapseYear: yearOut(s.StabilityCollapseYear),
		EnvCollapseYear:       yearOut(s.EnvCollapseYear),
		ResourceDepletionYear: yearOut(s.ResourceDepletionYear),
	})
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	var w summaryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Summary{
		FinalStability:        w.FinalStability,
		FinalKAI:              w.FinalKAI,
		FinalOutput:           w.FinalOutput,
		FinalEnvironment:      w.FinalEnvironment,
		FinalResources:        w.FinalResources,
		FinalUnemployment:     w.FinalUnemployment,
		FinalTaxRate:          w.FinalTaxRate,
		MinStability:          w.MinStability,
		MaxUnemployment:       w.MaxUnemployment,
		PeakKAI:               w.PeakKAI,
		MinEnvironment:        w.MinEnvironment,
		StabilityCollapseYear: yearIn(w.StabilityCollapseYear),
		EnvCollapseYear:       yearIn(w.EnvCollapseYear),
		ResourceDepletionYear: yearIn(w.ResourceDepletionYear),
	}
	return nil
}
