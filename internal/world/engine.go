package world

import "math"

// Aux is the auxiliary state the integrator carries between derivative
// evaluations: the exponentially smoothed tax rate (policy inertia) and the
// previous step's capital growth rate (hybrid displacement). Neither belongs
// to the stock vector, and nothing else is hidden.
type Aux struct {
	TaxRate           float64 // smoothed rate actually applied, in [base_tax, max_tax]
	PrevCapitalGrowth float64 // dK_ai/dt from the previous step, 0 at t=0
}

// Engine evaluates the coupled feedback equations. It is stateless: Derive
// is a pure function of stocks, aux state, parameters and time.
type Engine struct {
	p Params
}

// NewEngine validates the parameter table and returns an engine bound to it.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{p: p}, nil
}

// Params returns the bound parameter table.
func (e *Engine) Params() Params { return e.p }

// InitialAux is the auxiliary state before the first step.
func (e *Engine) InitialAux() Aux {
	return Aux{TaxRate: e.p.BaseTax}
}

// TargetTaxRate is the instantaneous sigmoid tax trigger: a logistic ramp
// from base_tax toward max_tax as stability falls below the threshold. A
// threshold of zero disables the trigger entirely. The integrator smooths
// this target before it reaches Derive.
func (e *Engine) TargetTaxRate(stability float64) float64 {
	p := e.p
	if p.StabilityThreshold <= 0 {
		return p.BaseTax
	}
	gap := p.StabilityThreshold - stability
	emergency := 1.0 / (1.0 + math.Exp(-2*gap/p.StabilityThreshold))
	target := p.BaseTax + emergency*(p.MaxTax-p.BaseTax)
	return math.Min(target, p.MaxTax)
}

// Derive computes the instantaneous derivative of all six stocks plus the
// derived flow quantities at time t. aux.TaxRate must already be smoothed;
// aux.PrevCapitalGrowth is the prior step's dK_ai/dt (zero at t=0).
func (e *Engine) Derive(s StockVector, aux Aux, t float64) (Rates, Flows) {
	p := e.p

	// Economic output, discounted for environmental damage and scarcity.
	rawOutput := s.KAI * p.OutputCoeff
	envMultiplier := 1.0 - p.EnvOutputSens*(1-s.Environment)*(1-s.Environment)
	fractionLeft := s.Resources / p.Resources0
	costMultiplier := 1.0 + p.ResourceScarcity*(1-fractionLeft)*(1-fractionLeft)
	output := rawOutput * envMultiplier / costMultiplier

	taxRevenue := output * aux.TaxRate

	// Environment: emission intensity falls as capital (embodied clean tech)
	// accumulates; absorption carries the E*(1+E) tipping-point term, so it
	// vanishes at E=0 and accelerates toward E=1.
	techFactor := 1.0 / (1.0 + p.EmissionImprovement*s.KAI)
	emissions := p.EmissionRate * techFactor * rawOutput
	absorption := p.AbsorptionCapacity * (1.0 + p.GreenFactor*s.Stability) *
		s.Environment * (1.0 + s.Environment)

	// Resources: strictly non-positive derivative, efficiency improves with
	// capital.
	resourceEfficiency := 1.0 / (1.0 + p.ResourceEfficiency*s.KAI)
	dResources := -p.ResourceUseRate * s.KAI * resourceEfficiency

	// Labor: hybrid displacement (growth-driven + churn), saturating job
	// creation degraded by mismatch, retraining bound by the minimum of
	// funding and institutional throughput.
	speed := p.AutomationSpeed
	if p.AutomationGrowth != 0 {
		speed *= math.Exp(p.AutomationGrowth * t)
	}
	laborForce := p.LaborForceBase + p.LaborForceKCoeff*s.KAI
	unemployment := s.LaborU / math.Max(laborForce, 1.0)

	displacement := math.Max(aux.PrevCapitalGrowth, 0)*speed + laborForce*p.ChurnRate

	rawJobs := output * p.JobCreationRate * (0.5 + 0.5*s.Stability)
	saturation := p.JobCreationSat / (p.JobCreationSat + output)
	mismatch := math.Max(1.0-p.MismatchFraction*math.Min(unemployment, 1.0), 0.0)
	jobCreation := rawJobs * saturation * mismatch

	retraining := math.Min(s.PublicPool*p.RetrainRate, s.LaborU*p.RetrainThroughput)

	dLaborU := displacement - jobCreation - retraining

	// Stability: drained by unemployment, tax burden and environmental
	// stress, restored by public spending scaled to the economy.
	drain := unemployment*p.UnemploymentStress +
		(aux.TaxRate/p.MaxTax)*p.TaxStress +
		p.EnvStabilitySens*math.Pow(1-s.Environment, 1.5)
	gain := (s.PublicPool / math.Max(s.KAI, 1.0)) * p.PoolStabilizer
	dStability := gain - drain

	dPool := taxRevenue - retraining - gain

	// Capital: unstable societies under-invest.
	dKAI := (output-taxRevenue)*s.Stability - s.KAI*p.Depreciation

	rates := Rates{
		KAI:         dKAI,
		LaborU:      dLaborU,
		Stability:   dStability,
		PublicPool:  dPool,
		Environment: absorption - emissions,
		Resources:   dResources,
	}
	flows := Flows{
		RawOutput:      rawOutput,
		Output:         output,
		TaxRate:        aux.TaxRate,
		TaxRevenue:     taxRevenue,
		Emissions:      emissions,
		Absorption:     absorption,
		Displacement:   displacement,
		JobCreation:    jobCreation,
		Retraining:     retraining,
		LaborForce:     laborForce,
		Unemployment:   unemployment,
		CostMultiplier: costMultiplier,
	}
	return rates, flows
}
