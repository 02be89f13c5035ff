package sensitivity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xulfus/ai-world3/internal/sim"
	"github.com/xulfus/ai-world3/internal/world"
)

func TestSummarizeFinalsAndExtrema(t *testing.T) {
	tr, err := sim.Run(world.DefaultParams(), sim.Config{Horizon: 30, Dt: 0.5})
	require.NoError(t, err)

	s := Summarize(tr)
	final := tr.Final()

	assert.Equal(t, final.Stocks.Stability, s.FinalStability)
	assert.Equal(t, final.Stocks.KAI, s.FinalKAI)
	assert.Equal(t, final.Flows.Unemployment, s.FinalUnemployment)
	assert.Equal(t, final.Flows.TaxRate, s.FinalTaxRate)

	assert.LessOrEqual(t, s.MinStability, s.FinalStability)
	assert.LessOrEqual(t, s.MinEnvironment, final.Stocks.Environment)
	assert.GreaterOrEqual(t, s.MaxUnemployment, s.FinalUnemployment)
	assert.GreaterOrEqual(t, s.PeakKAI, s.FinalKAI)
}

func TestSummarizeCollapseYears(t *testing.T) {
	// A benign short run: nothing collapses.
	tr, err := sim.Run(world.DefaultParams(), sim.Config{Horizon: 5, Dt: 0.5})
	require.NoError(t, err)

	s := Summarize(tr)
	assert.True(t, math.IsInf(s.StabilityCollapseYear, 1))
	assert.True(t, math.IsInf(s.EnvCollapseYear, 1))
	assert.True(t, math.IsInf(s.ResourceDepletionYear, 1))

	// Extreme extraction drains the resource base within the horizon.
	p := world.DefaultParams()
	p.ResourceUseRate = 0.5
	p.ResourceEfficiency = 0
	tr, err = sim.Run(p, sim.Config{Horizon: 100, Dt: 0.1})
	require.NoError(t, err)

	s = Summarize(tr)
	require.False(t, math.IsInf(s.ResourceDepletionYear, 1), "resources should deplete")
	assert.Greater(t, s.ResourceDepletionYear, 0.0)
	assert.LessOrEqual(t, s.ResourceDepletionYear, 100.0)
}

func TestSummaryMetricNames(t *testing.T) {
	s := Summary{FinalStability: 0.5, MaxUnemployment: 0.2}

	for _, name := range MetricNames {
		_, err := s.Metric(name)
		require.NoError(t, err, "metric %s", name)
	}

	v, err := s.Metric("max_unemployment_rate")
	require.NoError(t, err)
	assert.Equal(t, 0.2, v)

	_, err = s.Metric("gdp")
	assert.Error(t, err)
}

func TestSummaryJSONRoundtrip(t *testing.T) {
	orig := Summary{
		FinalStability:        0.42,
		FinalKAI:              812.5,
		FinalUnemployment:     0.07,
		MinStability:          0.1,
		MaxUnemployment:       0.3,
		PeakKAI:               900.0,
		MinEnvironment:        0.2,
		StabilityCollapseYear: 37.5,
		EnvCollapseYear:       math.Inf(1),
		ResourceDepletionYear: math.Inf(1),
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"env_collapse_year":null`)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, orig, got)
}
