package sensitivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpearmanMonotone(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	rho, err := Spearman(x, []float64{2, 4, 9, 16, 100})
	require.NoError(t, err)
	assert.Equal(t, 1.0, rho, "any increasing transform ranks identically")

	rho, err = Spearman(x, []float64{10, 8, 3, 2, -5})
	require.NoError(t, err)
	assert.Equal(t, -1.0, rho)
}

func TestSpearmanTies(t *testing.T) {
	// Tied x values get the average of ranks 2 and 3; against y = 1..4 the
	// closed form gives rho = 4.5 / sqrt(4.5 * 5).
	rho, err := Spearman([]float64{1, 2, 2, 3}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.94868, rho, 1e-4)
}

func TestSpearmanZeroVariance(t *testing.T) {
	rho, err := Spearman([]float64{3, 3, 3, 3}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Zero(t, rho)
}

func TestSpearmanInputValidation(t *testing.T) {
	_, err := Spearman([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = Spearman([]float64{1}, []float64{2})
	assert.Error(t, err)
}

func TestRanksAverageTies(t *testing.T) {
	got := ranks([]float64{10, 20, 20, 30, 20})
	assert.Equal(t, []float64{1, 3, 3, 5, 3}, got)
}

func syntheticSamples() []Sample {
	// "driver" moves the metric monotonically, "noise" is constant.
	samples := make([]Sample, 6)
	for i := range samples {
		x := float64(i)
		samples[i] = Sample{
			ID: i,
			Values: map[string]float64{
				"driver": x,
				"noise":  1.0,
			},
			Summary: Summary{FinalStability: 1.0 - 0.1*x},
		}
	}
	return samples
}

func TestCorrelationsOrdering(t *testing.T) {
	cors, err := Correlations(syntheticSamples(), []string{"noise", "driver"}, "final_stability")
	require.NoError(t, err)
	require.Len(t, cors, 2)

	// Tornado order: strongest |rho| first.
	assert.Equal(t, "driver", cors[0].Parameter)
	assert.Equal(t, -1.0, cors[0].Rho)
	assert.Equal(t, "noise", cors[1].Parameter)
	assert.Zero(t, cors[1].Rho)
}

func TestCorrelationsUnknownInputs(t *testing.T) {
	samples := syntheticSamples()

	_, err := Correlations(samples, []string{"driver"}, "no_such_metric")
	assert.Error(t, err)

	_, err = Correlations(samples, []string{"not_sampled"}, "final_stability")
	assert.Error(t, err)
}

func TestCorrelationMatrix(t *testing.T) {
	matrix, err := CorrelationMatrix(syntheticSamples(),
		[]string{"driver", "noise"},
		[]string{"final_stability", "min_stability"})
	require.NoError(t, err)

	assert.Equal(t, -1.0, matrix["driver"]["final_stability"])
	assert.Zero(t, matrix["noise"]["final_stability"])
	// min_stability is zero across all synthetic samples: no rank variance.
	assert.Zero(t, matrix["driver"]["min_stability"])
}
