package world

import (
	"errors"
	"fmt"
)

// Domain errors for model configuration and simulation.
var (
	// ErrBadParameter indicates a parameter value outside its valid range.
	ErrBadParameter = errors.New("world: parameter out of valid range")

	// ErrUnknownParameter indicates an override key that names no parameter.
	ErrUnknownParameter = errors.New("world: unknown parameter")

	// ErrUnknownScenario indicates a scenario name with no catalog entry.
	ErrUnknownScenario = errors.New("world: unknown scenario")

	// ErrBadConfig indicates an invalid horizon or step size.
	ErrBadConfig = errors.New("world: invalid run configuration")

	// ErrDivergence indicates a stock became NaN or Inf, or overshot its
	// legal interval far beyond ordinary boundary contact.
	ErrDivergence = errors.New("world: numerical divergence")

	// ErrBadRange indicates a sampling range with lower >= upper.
	ErrBadRange = errors.New("world: invalid sampling range")
)

// DivergenceError reports a diverged stock with enough context to reproduce
// the failing run. Value is the offending pre-clamp stock value.
type DivergenceError struct {
	Stock string
	Value float64
	Time  float64
	Step  int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): stock %s diverged (value %g)", e.Step, e.Time, e.Stock, e.Value)
}

func (e *DivergenceError) Unwrap() error { return ErrDivergence }
