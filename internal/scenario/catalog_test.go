package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xulfus/ai-world3/internal/world"
)

func TestListCoversPresets(t *testing.T) {
	names := List()
	assert.Equal(t, []string{
		"extraction", "green-transition", "laissez-faire", "nordic", "singularity",
	}, names)
	assert.NotContains(t, names, "custom")
}

func TestBuildEveryPreset(t *testing.T) {
	for _, name := range List() {
		p, err := Build(Name(name))
		require.NoError(t, err, "preset %s", name)
		require.NoError(t, p.Validate(), "preset %s", name)
	}
}

func TestBuildReturnsFreshParams(t *testing.T) {
	a, err := Build(Nordic)
	require.NoError(t, err)

	a.RetrainRate = 99.0 // mutate the caller's copy

	b, err := Build(Nordic)
	require.NoError(t, err)
	assert.Equal(t, 0.05, b.RetrainRate, "preset must not leak state between builds")
}

func TestBuildUnknownScenario(t *testing.T) {
	_, err := Build("anarcho-primitivism")
	assert.ErrorIs(t, err, world.ErrUnknownScenario)

	_, err = Presets("anarcho-primitivism")
	assert.ErrorIs(t, err, world.ErrUnknownScenario)
}

func TestBuildCustom(t *testing.T) {
	p, err := BuildCustom(Overrides{"churn_rate": 0.05, "max_tax": 0.9})
	require.NoError(t, err)
	assert.Equal(t, 0.05, p.ChurnRate)
	assert.Equal(t, 0.9, p.MaxTax)

	_, err = BuildCustom(Overrides{"tax_on_robots": 1.0})
	assert.ErrorIs(t, err, world.ErrUnknownParameter)

	_, err = BuildCustom(Overrides{"max_tax": -1.0})
	assert.ErrorIs(t, err, world.ErrBadParameter)
}

func TestPresetsDistinguishPolicy(t *testing.T) {
	laissez, err := Build(LaissezFaire)
	require.NoError(t, err)
	nordic, err := Build(Nordic)
	require.NoError(t, err)

	// No emergency tax under laissez-faire, early trigger under nordic.
	assert.Zero(t, laissez.StabilityThreshold)
	assert.Equal(t, 0.85, nordic.StabilityThreshold)
	assert.Greater(t, nordic.RetrainRate, laissez.RetrainRate)
}

func TestRunConfigRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := RunConfig{
		Scenario: "nordic",
		Horizon:  250,
		Dt:       0.05,
		Seed:     7,
		Overrides: map[string]float64{
			"churn_rate": 0.02,
		},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestRunConfigParams(t *testing.T) {
	cfg := RunConfig{Scenario: "nordic", Overrides: map[string]float64{"retrain_rate": 0.08}}
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 0.08, p.RetrainRate, "override wins over preset")
	assert.Equal(t, 0.85, p.StabilityThreshold, "untouched preset values survive")

	custom := RunConfig{Scenario: "custom", Overrides: map[string]float64{"max_tax": 0.5}}
	p, err = custom.Params()
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.MaxTax)

	bad := RunConfig{Scenario: "nope"}
	_, err = bad.Params()
	assert.ErrorIs(t, err, world.ErrUnknownScenario)
}
