package world

import (
	"fmt"
	"math"
	"sort"
)

// Params is the full parameter table of one run: every model coefficient plus
// the six initial stock values. Construct one via DefaultParams and adjust it
// with Set; a Params value is never shared between runs.
type Params struct {
	// Initial stocks.
	KAI0         float64 `yaml:"k_ai"`
	LaborU0      float64 `yaml:"labor_u"`
	Stability0   float64 `yaml:"stability"`
	PublicPool0  float64 `yaml:"public_pool"`
	Environment0 float64 `yaml:"environment"`
	Resources0   float64 `yaml:"resources"`

	// Automation and labor.
	AutomationSpeed   float64 `yaml:"automation_speed"`
	AutomationGrowth  float64 `yaml:"automation_growth"` // exponential schedule: speed * e^(growth*t)
	ChurnRate         float64 `yaml:"churn_rate"`
	JobCreationRate   float64 `yaml:"job_creation_rate"`
	JobCreationSat    float64 `yaml:"job_creation_saturation"`
	MismatchFraction  float64 `yaml:"mismatch_fraction"`
	RetrainRate       float64 `yaml:"retrain_rate"`
	RetrainThroughput float64 `yaml:"retrain_throughput"`
	LaborForceBase    float64 `yaml:"labor_force_base"`
	LaborForceKCoeff  float64 `yaml:"labor_force_k_sensitivity"`

	// Capital and output.
	Depreciation float64 `yaml:"depreciation"`
	OutputCoeff  float64 `yaml:"output_coefficient"`

	// Tax policy.
	StabilityThreshold float64 `yaml:"stability_threshold"`
	BaseTax            float64 `yaml:"base_tax"`
	MaxTax             float64 `yaml:"max_tax"`
	TaxSmoothing       float64 `yaml:"tax_smoothing"` // first-order time constant (policy inertia)

	// Stability weights.
	UnemploymentStress float64 `yaml:"unemployment_stress_weight"`
	TaxStress          float64 `yaml:"tax_stress_weight"`
	PoolStabilizer     float64 `yaml:"public_pool_stabilizer"`

	// Environment.
	EmissionRate        float64 `yaml:"emission_rate"`
	EmissionImprovement float64 `yaml:"emission_improvement_rate"`
	AbsorptionCapacity  float64 `yaml:"absorption_capacity"`
	GreenFactor         float64 `yaml:"green_investment_factor"`
	EnvOutputSens       float64 `yaml:"env_output_sensitivity"`
	EnvStabilitySens    float64 `yaml:"env_stability_sensitivity"`

	// Resources.
	ResourceUseRate    float64 `yaml:"resource_use_rate"`
	ResourceEfficiency float64 `yaml:"resource_efficiency_rate"`
	ResourceScarcity   float64 `yaml:"resource_scarcity_factor"`
}

// DefaultParams returns the documented baseline. Every scenario and every
// custom run starts from a fresh copy of this table.
func DefaultParams() Params {
	return Params{
		KAI0:         100.0,
		LaborU0:      5.0,
		Stability0:   1.0,
		PublicPool0:  10.0,
		Environment0: 0.8,
		Resources0:   1000.0,

		AutomationSpeed:   0.05,
		AutomationGrowth:  0.0,
		ChurnRate:         0.01,
		JobCreationRate:   0.02,
		JobCreationSat:    50.0,
		MismatchFraction:  0.5,
		RetrainRate:       0.02,
		RetrainThroughput: 0.15,
		LaborForceBase:    100.0,
		LaborForceKCoeff:  0.5,

		Depreciation: 0.03,
		OutputCoeff:  0.3,

		StabilityThreshold: 0.7,
		BaseTax:            0.20,
		MaxTax:             0.70,
		TaxSmoothing:       2.0,

		UnemploymentStress: 0.5,
		TaxStress:          0.1,
		PoolStabilizer:     0.05,

		EmissionRate:        0.0008,
		EmissionImprovement: 0.001,
		AbsorptionCapacity:  0.012,
		GreenFactor:         0.5,
		EnvOutputSens:       0.5,
		EnvStabilitySens:    0.3,

		ResourceUseRate:    0.05,
		ResourceEfficiency: 0.001,
		ResourceScarcity:   5.0,
	}
}

// InitialStocks builds the t=0 state vector.
func (p Params) InitialStocks() StockVector {
	return StockVector{
		KAI:         p.KAI0,
		LaborU:      p.LaborU0,
		Stability:   p.Stability0,
		PublicPool:  p.PublicPool0,
		Environment: p.Environment0,
		Resources:   p.Resources0,
	}
}

// ExcursionBudget is the per-stock overshoot tolerated before a step counts
// as numerical divergence: one interval width for the unit-interval stocks,
// one natural scale's worth for the floor-bounded ones. The unemployed head
// count scales with the labor force, not its (often tiny) initial value.
func (p Params) ExcursionBudget() StockVector {
	return StockVector{
		KAI:         math.Max(p.KAI0, 1),
		LaborU:      math.Max(math.Max(p.LaborU0, p.LaborForceBase), 1),
		Stability:   1,
		PublicPool:  math.Max(p.PublicPool0, 1),
		Environment: 1,
		Resources:   math.Max(p.Resources0, 1),
	}
}

// fields maps the public parameter names onto the struct. The same names are
// used by scenario overrides, --set flags, sweep specs and yaml configs.
func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		"k_ai":        &p.KAI0,
		"labor_u":     &p.LaborU0,
		"stability":   &p.Stability0,
		"public_pool": &p.PublicPool0,
		"environment": &p.Environment0,
		"resources":   &p.Resources0,

		"automation_speed":          &p.AutomationSpeed,
		"automation_growth":         &p.AutomationGrowth,
		"churn_rate":                &p.ChurnRate,
		"job_creation_rate":         &p.JobCreationRate,
		"job_creation_saturation":   &p.JobCreationSat,
		"mismatch_fraction":         &p.MismatchFraction,
		"retrain_rate":              &p.RetrainRate,
		"retrain_throughput":        &p.RetrainThroughput,
		"labor_force_base":          &p.LaborForceBase,
		"labor_force_k_sensitivity": &p.LaborForceKCoeff,

		"depreciation":       &p.Depreciation,
		"output_coefficient": &p.OutputCoeff,

		"stability_threshold": &p.StabilityThreshold,
		"base_tax":            &p.BaseTax,
		"max_tax":             &p.MaxTax,
		"tax_smoothing":       &p.TaxSmoothing,

		"unemployment_stress_weight": &p.UnemploymentStress,
		"tax_stress_weight":          &p.TaxStress,
		"public_pool_stabilizer":     &p.PoolStabilizer,

		"emission_rate":             &p.EmissionRate,
		"emission_improvement_rate": &p.EmissionImprovement,
		"absorption_capacity":       &p.AbsorptionCapacity,
		"green_investment_factor":   &p.GreenFactor,
		"env_output_sensitivity":    &p.EnvOutputSens,
		"env_stability_sensitivity": &p.EnvStabilitySens,

		"resource_use_rate":        &p.ResourceUseRate,
		"resource_efficiency_rate": &p.ResourceEfficiency,
		"resource_scarcity_factor": &p.ResourceScarcity,
	}
}

// Set assigns a parameter by name. Unknown names are rejected so that a typo
// in an override can never silently fall back to the default.
func (p *Params) Set(name string, value float64) error {
	f, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	*f = value
	return nil
}

// Value reads a parameter by name.
func (p *Params) Value(name string) (float64, error) {
	f, ok := p.fields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return *f, nil
}

// Apply sets every override in the map, rejecting the whole batch on the
// first unknown name. Overrides are applied in sorted order so failures are
// deterministic.
func (p *Params) Apply(overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.Set(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// Names lists every recognized parameter, sorted.
func (p Params) Names() []string {
	fields := p.fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate rejects parameter combinations outside the model's domain before
// any integration begins.
func (p Params) Validate() error {
	nonNegative := map[string]float64{
		"k_ai":                       p.KAI0,
		"labor_u":                    p.LaborU0,
		"public_pool":                p.PublicPool0,
		"automation_speed":           p.AutomationSpeed,
		"churn_rate":                 p.ChurnRate,
		"job_creation_rate":          p.JobCreationRate,
		"mismatch_fraction":          p.MismatchFraction,
		"retrain_rate":               p.RetrainRate,
		"retrain_throughput":         p.RetrainThroughput,
		"labor_force_base":           p.LaborForceBase,
		"labor_force_k_sensitivity":  p.LaborForceKCoeff,
		"depreciation":               p.Depreciation,
		"stability_threshold":        p.StabilityThreshold,
		"base_tax":                   p.BaseTax,
		"unemployment_stress_weight": p.UnemploymentStress,
		"tax_stress_weight":          p.TaxStress,
		"public_pool_stabilizer":     p.PoolStabilizer,
		"emission_rate":              p.EmissionRate,
		"emission_improvement_rate":  p.EmissionImprovement,
		"absorption_capacity":        p.AbsorptionCapacity,
		"green_investment_factor":    p.GreenFactor,
		"env_stability_sensitivity":  p.EnvStabilitySens,
		"resource_use_rate":          p.ResourceUseRate,
		"resource_efficiency_rate":   p.ResourceEfficiency,
		"resource_scarcity_factor":   p.ResourceScarcity,
	}
	names := make([]string, 0, len(nonNegative))
	for name := range nonNegative {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if nonNegative[name] < 0 {
			return fmt.Errorf("%w: %s = %v (must be >= 0)", ErrBadParameter, name, nonNegative[name])
		}
	}

	if p.Stability0 < 0 || p.Stability0 > 1 {
		return fmt.Errorf("%w: stability = %v (must be in [0,1])", ErrBadParameter, p.Stability0)
	}
	if p.Environment0 < 0 || p.Environment0 > 1 {
		return fmt.Errorf("%w: environment = %v (must be in [0,1])", ErrBadParameter, p.Environment0)
	}
	if p.Resources0 <= 0 {
		return fmt.Errorf("%w: resources = %v (must be > 0)", ErrBadParameter, p.Resources0)
	}
	if p.OutputCoeff <= 0 {
		return fmt.Errorf("%w: output_coefficient = %v (must be > 0)", ErrBadParameter, p.OutputCoeff)
	}
	if p.MaxTax <= 0 || p.MaxTax > 1 {
		return fmt.Errorf("%w: max_tax = %v (must be in (0,1])", ErrBadParameter, p.MaxTax)
	}
	if p.BaseTax > p.MaxTax {
		return fmt.Errorf("%w: base_tax %v exceeds max_tax %v", ErrBadParameter, p.BaseTax, p.MaxTax)
	}
	if p.TaxSmoothing <= 0 {
		return fmt.Errorf("%w: tax_smoothing = %v (must be > 0)", ErrBadParameter, p.TaxSmoothing)
	}
	if p.JobCreationSat <= 0 {
		return fmt.Errorf("%w: job_creation_saturation = %v (must be > 0)", ErrBadParameter, p.JobCreationSat)
	}
	if p.EnvOutputSens < 0 || p.EnvOutputSens > 1 {
		return fmt.Errorf("%w: env_output_sensitivity = %v (must be in [0,1])", ErrBadParameter, p.EnvOutputSens)
	}
	return nil
}
