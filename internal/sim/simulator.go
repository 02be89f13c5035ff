// Package sim integrates the world model forward in time with a fixed-step
// explicit Euler scheme and assembles the resulting trajectory.
package sim

import (
	"fmt"
	"math"

	"github.com/xulfus/ai-world3/internal/world"
)

// Config controls one integration run. The step is fixed; callers wanting
// tighter accuracy shrink Dt explicitly.
type Config struct {
	Horizon float64 // total simulated time, inclusive of both endpoints
	Dt      float64 // fixed step size
}

// DefaultConfig mirrors the reference run: 100 years at dt=0.1.
func DefaultConfig() Config {
	return Config{Horizon: 100.0, Dt: 0.1}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", world.ErrBadConfig, c.Dt)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %v", world.ErrBadConfig, c.Horizon)
	}
	return nil
}

// Step is one trajectory row: the stocks after the update and the flows that
// produced it.
type Step struct {
	Time   float64
	Stocks world.StockVector
	Flows  world.Flows
}

// Trajectory is the ordered output of one run, one entry per integration
// step plus the initial state.
type Trajectory struct {
	Steps []Step
}

// Final returns the last row.
func (tr *Trajectory) Final() Step { return tr.Steps[len(tr.Steps)-1] }

// Stepper advances a single run one step at a time. It owns the auxiliary
// state (smoothed tax rate, previous capital growth) the derivative engine
// needs across steps.
type Stepper struct {
	eng    *world.Engine
	cfg    Config
	stocks world.StockVector
	aux    world.Aux
	budget world.StockVector // tolerated overshoot per stock
	alpha  float64           // tax smoothing gain, 1 - e^(-dt/tau)
	t      float64
	step   int
	steps  int
}

// NewStepper validates parameters and configuration and positions the run
// at t=0.
func NewStepper(p world.Params, cfg Config) (*Stepper, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	eng, err := world.NewEngine(p)
	if err != nil {
		return nil, err
	}
	return &Stepper{
		eng:    eng,
		cfg:    cfg,
		stocks: p.InitialStocks(),
		aux:    eng.InitialAux(),
		budget: p.ExcursionBudget(),
		alpha:  1.0 - math.Exp(-cfg.Dt/p.TaxSmoothing),
		steps:  int(math.Round(cfg.Horizon / cfg.Dt)),
	}, nil
}

// Initial returns the t=0 row: the starting stocks with flows evaluated at
// the initial state, recorded for diagnostics only.
func (s *Stepper) Initial() Step {
	_, flows := s.eng.Derive(s.stocks, s.aux, 0)
	return Step{Time: 0, Stocks: s.stocks, Flows: flows}
}

// Done reports whether the horizon has been reached.
func (s *Stepper) Done() bool { return s.step >= s.steps }

// Step advances one fixed step: smooth the tax target, evaluate the
// derivative, apply the Euler update, fail fast on any non-finite stock or
// on an overshoot past a legal bound beyond the excursion budget, then clamp
// bounded stocks. Ordinary boundary contact clamps silently; a step the
// chosen dt cannot resolve surfaces as a DivergenceError instead of a
// plausible-looking clamped trajectory.
func (s *Stepper) Step() (Step, error) {
	target := s.eng.TargetTaxRate(s.stocks.Stability)
	s.aux.TaxRate += s.alpha * (target - s.aux.TaxRate)

	rates, flows := s.eng.Derive(s.stocks, s.aux, s.t)

	raw := s.stocks.Add(rates, s.cfg.Dt)
	s.step++
	s.t = float64(s.step) * s.cfg.Dt

	if name, value := raw.NonFinite(); name != "" {
		return Step{}, &world.DivergenceError{Stock: name, Value: value, Time: s.t, Step: s.step}
	}
	if name, value := raw.Excursion(s.budget); name != "" {
		return Step{}, &world.DivergenceError{Stock: name, Value: value, Time: s.t, Step: s.step}
	}

	s.stocks = raw.Clamp()
	s.aux.PrevCapitalGrowth = rates.KAI
	return Step{Time: s.t, Stocks: s.stocks, Flows: flows}, nil
}

// Run integrates a parameter set across the full horizon. The trajectory
// covers [0, horizon] inclusive; re-running with identical parameters yields
// a bit-identical result.
func Run(p world.Params, cfg Config) (*Trajectory, error) {
	st, err := NewStepper(p, cfg)
	if err != nil {
		return nil, err
	}

	tr := &Trajectory{Steps: make([]Step, 0, st.steps+1)}
	tr.Steps = append(tr.Steps, st.Initial())

	for !st.Done() {
		row, err := st.Step()
		if err != nil {
			return nil, err
		}
		tr.Steps = append(tr.Steps, row)
	}
	return tr, nil
}
