package world

import "math"

// StockVector holds the six state variables integrated over time.
//
// Stability and Environment live in [0,1]; KAI, LaborU, PublicPool and
// Resources are non-negative. LaborU is an absolute head count, not a rate,
// and may exceed the nominal labor force under extreme displacement.
type StockVector struct {
	KAI         float64 // AI/automation capital
	LaborU      float64 // unemployed workers (absolute)
	Stability   float64 // social stability, clamped to [0,1]
	PublicPool  float64 // fiscal capacity, clamped to >= 0
	Environment float64 // environmental quality, clamped to [0,1]
	Resources   float64 // natural resource stock, non-increasing
}

// Rates is the instantaneous derivative of each stock.
type Rates struct {
	KAI         float64
	LaborU      float64
	Stability   float64
	PublicPool  float64
	Environment float64
	Resources   float64
}

// Flows captures the derived quantities behind one derivative evaluation.
// They are recorded per step for reporting and sensitivity decomposition.
type Flows struct {
	RawOutput      float64 // K_ai x output coefficient, before penalties
	Output         float64 // effective output after env and scarcity penalties
	TaxRate        float64 // smoothed tax rate applied this step
	TaxRevenue     float64
	Emissions      float64
	Absorption     float64
	Displacement   float64 // churn + growth-driven displacement
	JobCreation    float64 // natural jobs after saturation and mismatch
	Retraining     float64 // min(funding, institutional throughput)
	LaborForce     float64
	Unemployment   float64 // unemployment rate, LaborU / labor force
	CostMultiplier float64 // resource scarcity cost multiplier
}

// IsValid reports whether every stock is finite.
func (s StockVector) IsValid() bool {
	for _, v := range s.values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NonFinite returns the name and value of the first non-finite stock, or
// ("", 0).
func (s StockVector) NonFinite() (string, float64) {
	names := stockNames
	for i, v := range s.values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return names[i], v
		}
	}
	return "", 0
}

// Excursion returns the name and pre-clamp value of the first stock lying
// outside its legal interval by more than its allowed overshoot, or ("", 0).
// Routine boundary contact (a step landing slightly past a bound before the
// clamp) stays inside the budget; anything beyond it means the step size
// cannot resolve the dynamics.
func (s StockVector) Excursion(budget StockVector) (string, float64) {
	overshoot := [6]float64{
		-s.KAI,
		-s.LaborU,
		math.Max(-s.Stability, s.Stability-1),
		-s.PublicPool,
		math.Max(-s.Environment, s.Environment-1),
		-s.Resources,
	}
	limits := [6]float64{
		budget.KAI, budget.LaborU, budget.Stability,
		budget.PublicPool, budget.Environment, budget.Resources,
	}
	values := s.values()
	for i, over := range overshoot {
		if over > limits[i] {
			return stockNames[i], values[i]
		}
	}
	return "", 0
}

// Clamp enforces the legal interval of every bounded stock.
func (s StockVector) Clamp() StockVector {
	s.KAI = math.Max(s.KAI, 0)
	s.LaborU = math.Max(s.LaborU, 0)
	s.Stability = clamp01(s.Stability)
	s.PublicPool = math.Max(s.PublicPool, 0)
	s.Environment = clamp01(s.Environment)
	s.Resources = math.Max(s.Resources, 0)
	return s
}

// Add applies one explicit Euler update: s + dt*r.
func (s StockVector) Add(r Rates, dt float64) StockVector {
	s.KAI += dt * r.KAI
	s.LaborU += dt * r.LaborU
	s.Stability += dt * r.Stability
	s.PublicPool += dt * r.PublicPool
	s.Environment += dt * r.Environment
	s.Resources += dt * r.Resources
	return s
}

var stockNames = []string{"k_ai", "labor_u", "stability", "public_pool", "environment", "resources"}

func (s StockVector) values() [6]float64 {
	return [6]float64{s.KAI, s.LaborU, s.Stability, s.PublicPool, s.Environment, s.Resources}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
