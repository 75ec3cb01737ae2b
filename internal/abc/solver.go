// Package abc implements Approximate Bayesian Computation with a
// differential-evolution population search (ABC-DE). The Solver interface
// keeps the search strategy swappable; the calibration driver depends only
// on priors in, evaluation function in, particle population out.
package abc

import (
	"context"
	"math"
	"runtime"
)

// Evaluator turns one theta vector into a simulated summary series
type Evaluator func(theta []float64) ([]float64, error)

// EvaluatorFactory creates an independent evaluation context. The solver
// calls it once per worker, so concurrent evaluations never share
// simulator state.
type EvaluatorFactory func() Evaluator

// Distance compares observed and simulated series; lower is better
type Distance func(observed, simulated []float64) float64

// Problem bundles everything a solver needs for one calibration
type Problem struct {
	Prior        Prior
	Observed     []float64
	NewEvaluator EvaluatorFactory
	Distance     Distance
}

// Result is the accepted particle population, the empirical posterior
type Result struct {
	// Particles holds one accepted theta vector per population slot
	Particles [][]float64
	// Distances holds each particle's distance to the observations
	Distances []float64
	// Epsilon is the final acceptance tolerance
	Epsilon float64
	// Generations is the number of completed generation updates
	Generations int
	// Converged reports whether the target tolerance was reached
	Converged bool
}

// Solver runs a population-based ABC search to convergence
type Solver interface {
	Solve(ctx context.Context, problem Problem) (*Result, error)
}

// Options configures the ABC-DE solver. Unknown solver_options keys from
// the configuration are ignored; the reserved etarget key maps to
// TargetEpsilon.
type Options struct {
	PopulationSize int
	MaxGenerations int
	TargetEpsilon  float64
	Gamma          float64
	CrossoverProb  float64
	JitterStdDev   float64
	Workers        int
	Seed           int64
}

// DefaultOptions returns the solver defaults
func DefaultOptions() Options {
	return Options{
		PopulationSize: 32,
		MaxGenerations: 100,
		TargetEpsilon:  0,
		Gamma:          0.8,
		CrossoverProb:  0.9,
		JitterStdDev:   1e-3,
		Workers:        runtime.GOMAXPROCS(0),
		Seed:           0,
	}
}

// OptionsFromMap builds options from the configuration's solver_options
// map, using defaults for absent keys. etarget is passed separately since
// the driver consumes it from the options map first.
func OptionsFromMap(opts map[string]float64, etarget float64) Options {
	o := DefaultOptions()
	o.TargetEpsilon = etarget

	if v, ok := opts["npop"]; ok && v > 0 {
		o.PopulationSize = int(v)
	}
	if v, ok := opts["generations"]; ok && v > 0 {
		o.MaxGenerations = int(v)
	}
	if v, ok := opts["gamma"]; ok && v > 0 {
		o.Gamma = v
	}
	if v, ok := opts["cr"]; ok && v > 0 && v <= 1 {
		o.CrossoverProb = v
	}
	if v, ok := opts["jitter"]; ok && v >= 0 {
		o.JitterStdDev = v
	}
	if v, ok := opts["workers"]; ok && v > 0 {
		o.Workers = int(v)
	}
	if v, ok := opts["seed"]; ok {
		o.Seed = int64(v)
	}
	return o
}

// maxDistance returns the largest finite element, or +Inf for an empty
// slice
func maxDistance(distances []float64) float64 {
	if len(distances) == 0 {
		return math.Inf(1)
	}
	max := distances[0]
	for _, d := range distances[1:] {
		if d > max {
			max = d
		}
	}
	return max
}
