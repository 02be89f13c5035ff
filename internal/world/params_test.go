package world

import (
	"errors"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	if p.KAI0 != 100.0 {
		t.Errorf("expected initial capital 100, got %f", p.KAI0)
	}
	if p.Stability0 != 1.0 {
		t.Errorf("expected initial stability 1, got %f", p.Stability0)
	}
	if p.BaseTax != 0.20 || p.MaxTax != 0.70 {
		t.Errorf("unexpected tax defaults: base %f max %f", p.BaseTax, p.MaxTax)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestParamsSetValue(t *testing.T) {
	p := DefaultParams()

	if err := p.Set("churn_rate", 0.04); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if p.ChurnRate != 0.04 {
		t.Errorf("set did not land: %f", p.ChurnRate)
	}

	v, err := p.Value("churn_rate")
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if v != 0.04 {
		t.Errorf("expected 0.04, got %f", v)
	}
}

func TestParamsUnknownName(t *testing.T) {
	p := DefaultParams()

	if err := p.Set("bogus", 1.0); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
	if _, err := p.Value("bogus"); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
	if err := p.Apply(map[string]float64{"churn_rate": 0.02, "bogus": 1.0}); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestParamsNamesCoverEveryField(t *testing.T) {
	p := DefaultParams()
	names := p.Names()

	// 6 initial stocks + 28 coefficients
	if len(names) != 34 {
		t.Errorf("expected 34 parameter names, got %d", len(names))
	}
	for _, name := range names {
		if _, err := p.Value(name); err != nil {
			t.Errorf("listed name %q not readable: %v", name, err)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"churn_rate", -0.01},
		{"retrain_rate", -1},
		{"stability", 1.5},
		{"environment", -0.2},
		{"resources", 0},
		{"max_tax", 0},
		{"tax_smoothing", 0},
		{"job_creation_saturation", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			if err := p.Set(tt.name, tt.value); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if err := p.Validate(); !errors.Is(err, ErrBadParameter) {
				t.Errorf("expected ErrBadParameter for %s=%v, got %v", tt.name, tt.value, err)
			}
		})
	}
}

func TestValidateRejectsBaseTaxAboveMax(t *testing.T) {
	p := DefaultParams()
	p.BaseTax = 0.8
	p.MaxTax = 0.7
	if err := p.Validate(); !errors.Is(err, ErrBadParameter) {
		t.Errorf("expected ErrBadParameter, got %v", err)
	}
}

func TestInitialStocks(t *testing.T) {
	p := DefaultParams()
	s := p.InitialStocks()

	if s.KAI != p.KAI0 || s.LaborU != p.LaborU0 || s.Resources != p.Resources0 {
		t.Errorf("initial stocks do not match parameters: %+v", s)
	}
}
