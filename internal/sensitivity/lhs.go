package sensitivity

import (
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xulfus/ai-world3/internal/sim"
	"github.com/xulfus/ai-world3/internal/world"
)

// Range bounds one sampled parameter.
type Range struct {
	Name string
	Lo   float64
	Hi   float64
}

// Sample is one LHS run: the drawn parameter vector and its trajectory
// summary.
type Sample struct {
	ID      int
	Values  map[string]float64
	Summary Summary
}

// LHSConfig controls the sampler. Workers <= 0 uses one worker per CPU; the
// grid itself is independent of worker count.
type LHSConfig struct {
	Samples int
	Seed    int64
	Workers int
}

// SampleGrid draws the full Latin Hypercube grid up front: each parameter's
// range is split into n equal strata, the stratum order is permuted
// independently per parameter, and one value is drawn uniformly within each
// stratum. The same seed always yields the same grid.
func SampleGrid(ranges []Range, n int, seed int64) ([][]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sample count must be positive, got %d", world.ErrBadRange, n)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no parameter ranges given", world.ErrBadRange)
	}
	for _, r := range ranges {
		if r.Lo >= r.Hi {
			return nil, fmt.Errorf("%w: %s [%v, %v]", world.ErrBadRange, r.Name, r.Lo, r.Hi)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	grid := make([][]float64, n)
	for i := range grid {
		grid[i] = make([]float64, len(ranges))
	}
	for j, r := range ranges {
		perm := rng.Perm(n)
		width := (r.Hi - r.Lo) / float64(n)
		for i := 0; i < n; i++ {
			u := rng.Float64()
			grid[i][j] = r.Lo + (float64(perm[i])+u)*width
		}
	}
	return grid, nil
}

// LHS samples the parameter space and runs the integrator once per sample.
// Runs are independent and fan out across workers; results come back in
// sample order regardless of scheduling.
func LHS(base world.Params, ranges []Range, lcfg LHSConfig, cfg sim.Config) ([]Sample, error) {
	for _, r := range ranges {
		if _, err := base.Value(r.Name); err != nil {
			return nil, err
		}
	}
	grid, err := SampleGrid(ranges, lcfg.Samples, lcfg.Seed)
	if err != nil {
		return nil, err
	}

	workers := lcfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	samples := make([]Sample, lcfg.Samples)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < lcfg.Samples; i++ {
		g.Go(func() error {
			p := base
			values := make(map[string]float64, len(ranges))
			for j, r := range ranges {
				if err := p.Set(r.Name, grid[i][j]); err != nil {
					return err
				}
				values[r.Name] = grid[i][j]
			}
			tr, err := sim.Run(p, cfg)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			samples[i] = Sample{ID: i, Values: values, Summary: Summarize(tr)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// DefaultLHSRanges is the documented sampling envelope around the defaults.
func DefaultLHSRanges() []Range {
	return []Range{
		{"automation_speed", 0.02, 0.10},
		{"churn_rate", 0.0, 0.03},
		{"retrain_rate", 0.0, 0.08},
		{"job_creation_rate", 0.005, 0.04},
		{"job_creation_saturation", 20.0, 200.0},
		{"mismatch_fraction", 0.0, 0.8},
		{"stability_threshold", 0.0, 0.95},
		{"emission_rate", 0.0002, 0.002},
		{"resource_use_rate", 0.01, 0.15},
		{"emission_improvement_rate", 0.0, 0.01},
		{"resource_efficiency_rate", 0.0, 0.01},
	}
}
