package sensitivity

import (
	"fmt"
	"math"
	"sort"
)

// ranks assigns average ranks (1-based), breaking ties by the average-rank
// convention.
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// positions i..j share the same value; average their ranks
		avg := float64(i+j)/2.0 + 1.0
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}

// Spearman computes the rank correlation of two equal-length series. A
// series with zero rank variance (all values tied) yields rho = 0.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("need at least 2 observations, got %d", len(x))
	}

	rx, ry := ranks(x), ranks(y)
	n := float64(len(x))

	var meanX, meanY float64
	for i := range rx {
		meanX += rx[i]
		meanY += ry[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range rx {
		dx, dy := rx[i]-meanX, ry[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, nil
	}
	return cov / math.Sqrt(varX*varY), nil
}

// Correlation pairs one sampled parameter with its Spearman rho against a
// metric.
type Correlation struct {
	Parameter string
	Rho       float64
}

// Correlations scores every sampled parameter against one output metric and
// sorts by absolute correlation, the tornado-diagram ordering.
func Correlations(samples []Sample, params []string, metric string) ([]Correlation, error) {
	ys := make([]float64, len(samples))
	for i, s := range samples {
		v, err := s.Summary.Metric(metric)
		if err != nil {
			return nil, err
		}
		ys[i] = v
	}

	out := make([]Correlation, 0, len(params))
	for _, param := range params {
		xs := make([]float64, len(samples))
		for i, s := range samples {
			v, ok := s.Values[param]
			if !ok {
				return nil, fmt.Errorf("parameter %q not present in samples", param)
			}
			xs[i] = v
		}
		rho, err := Spearman(xs, ys)
		if err != nil {
			return nil, err
		}
		out = append(out, Correlation{Parameter: param, Rho: rho})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].Rho) > math.Abs(out[b].Rho)
	})
	return out, nil
}

// CorrelationMatrix scores every parameter against every metric:
// matrix[param][metric] = rho.
func CorrelationMatrix(samples []Sample, params, metrics []string) (map[string]map[string]float64, error) {
	matrix := make(map[string]map[string]float64, len(params))
	for _, metric := range metrics {
		cors, err := Correlations(samples, params, metric)
		if err != nil {
			return nil, err
		}
		for _, c := range cors {
			if matrix[c.Parameter] == nil {
				matrix[c.Parameter] = make(map[string]float64, len(metrics))
			}
			matrix[c.Parameter][metric] = c.Rho
		}
	}
	return matrix, nil
}
