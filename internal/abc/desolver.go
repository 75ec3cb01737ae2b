package abc

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/epifit/calibration-core/pkg/logger"
	"github.com/epifit/calibration-core/pkg/utils"
)

// epsilonQuantile is the population-distance quantile the shrinking
// acceptance tolerance tracks between generations.
const epsilonQuantile = 0.75

// DESolver is a differential-evolution ABC sampler: a particle population
// is refined generation by generation with DE proposals, accepting moves
// that improve a particle's distance within a shrinking tolerance.
type DESolver struct {
	opts   Options
	logger *slog.Logger
}

// NewDESolver creates a solver with the given options
func NewDESolver(opts Options) *DESolver {
	if opts.PopulationSize < 4 {
		// DE mutation needs three distinct partners per particle
		opts.PopulationSize = 4
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxGenerations < 1 {
		opts.MaxGenerations = 1
	}
	return &DESolver{opts: opts, logger: logger.Default}
}

// SetLogger sets the solver's logger
func (s *DESolver) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Solve runs the ABC-DE search and returns the accepted particle
// population. Any evaluator error aborts the run.
func (s *DESolver) Solve(ctx context.Context, problem Problem) (*Result, error) {
	if problem.Prior == nil {
		return nil, fmt.Errorf("prior is required")
	}
	if problem.NewEvaluator == nil {
		return nil, fmt.Errorf("evaluator factory is required")
	}
	if problem.Distance == nil {
		return nil, fmt.Errorf("distance function is required")
	}
	if len(problem.Observed) == 0 {
		return nil, fmt.Errorf("observed series is empty")
	}

	n := s.opts.PopulationSize
	dim := problem.Prior.Dim()
	rng := utils.NewRandSource(s.opts.Seed)

	// Initial population straight from the prior
	particles := make([][]float64, n)
	for i := range particles {
		particles[i] = problem.Prior.Sample()
	}
	distances, err := s.evaluateBatch(ctx, problem, particles, nil)
	if err != nil {
		return nil, fmt.Errorf("initial population evaluation failed: %w", err)
	}

	epsilon := quantile(distances, epsilonQuantile)
	s.logger.Info("population initialized",
		"particles", n,
		"dimensions", dim,
		"epsilon", epsilon,
		"target_epsilon", s.opts.TargetEpsilon)

	generations := 0
	for gen := 1; gen <= s.opts.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		proposals := make([][]float64, n)
		skip := make([]bool, n)
		for i := range particles {
			prop := s.propose(rng, particles, i, dim)
			if math.IsInf(problem.Prior.LogProb(prop), -1) {
				skip[i] = true
				continue
			}
			proposals[i] = prop
		}

		propDistances, err := s.evaluateBatch(ctx, problem, proposals, skip)
		if err != nil {
			return nil, fmt.Errorf("generation %d evaluation failed: %w", gen, err)
		}

		accepted := 0
		for i := range particles {
			if skip[i] {
				continue
			}
			if propDistances[i] <= epsilon && propDistances[i] <= distances[i] {
				particles[i] = proposals[i]
				distances[i] = propDistances[i]
				accepted++
			}
		}

		epsilon = quantile(distances, epsilonQuantile)
		if epsilon < s.opts.TargetEpsilon {
			epsilon = s.opts.TargetEpsilon
		}
		generations = gen

		s.logger.Debug("generation complete",
			"generation", gen,
			"accepted", accepted,
			"epsilon", epsilon,
			"mean_distance", utils.Mean(distances),
			"stddev_distance", utils.StdDev(distances),
			"worst_distance", maxDistance(distances))

		if maxDistance(distances) <= s.opts.TargetEpsilon {
			s.logger.Info("converged",
				"generation", gen,
				"epsilon", epsilon)
			return &Result{
				Particles:   particles,
				Distances:   distances,
				Epsilon:     epsilon,
				Generations: generations,
				Converged:   true,
			}, nil
		}
	}

	s.logger.Info("max generations reached",
		"generations", generations,
		"epsilon", epsilon,
		"worst_distance", maxDistance(distances))

	return &Result{
		Particles:   particles,
		Distances:   distances,
		Epsilon:     epsilon,
		Generations: generations,
		Converged:   false,
	}, nil
}

// propose builds one DE trial vector for particle i: the mutation
// a + gamma*(b-c) with jitter, crossed over with the current particle.
func (s *DESolver) propose(rng *utils.RandSource, particles [][]float64, i, dim int) []float64 {
	n := len(particles)
	a := pickIndex(rng, n, i)
	b := pickIndex(rng, n, i, a)
	c := pickIndex(rng, n, i, a, b)

	prop := make([]float64, dim)
	// One coordinate always takes the mutation, or the trial could equal
	// the current particle
	forced := rng.Intn(dim)
	for j := 0; j < dim; j++ {
		if j == forced || rng.Float64() < s.opts.CrossoverProb {
			prop[j] = particles[a][j] +
				s.opts.Gamma*(particles[b][j]-particles[c][j]) +
				rng.NormFloat64(0, s.opts.JitterStdDev)
		} else {
			prop[j] = particles[i][j]
		}
	}
	return prop
}

// pickIndex draws an index in [0, n) distinct from all excluded indices
func pickIndex(rng *utils.RandSource, n int, exclude ...int) int {
	for {
		idx := rng.Intn(n)
		excluded := false
		for _, e := range exclude {
			if idx == e {
				excluded = true
				break
			}
		}
		if !excluded {
			return idx
		}
	}
}

// evaluateBatch evaluates a batch of theta vectors on a bounded worker
// pool. Every worker owns its own evaluation context from the factory, so
// no simulator state is shared across concurrent evaluations. Skipped
// slots come back as +Inf.
func (s *DESolver) evaluateBatch(ctx context.Context, problem Problem, thetas [][]float64, skip []bool) ([]float64, error) {
	distances := make([]float64, len(thetas))

	jobs := make(chan int, len(thetas))
	for i := range thetas {
		if skip != nil && skip[i] {
			distances[i] = math.Inf(1)
			continue
		}
		jobs <- i
	}
	close(jobs)

	workers := s.opts.Workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			evaluate := problem.NewEvaluator()
			for i := range jobs {
				select {
				case <-ctx.Done():
					errs[w] = ctx.Err()
					return
				default:
				}
				simulated, err := evaluate(thetas[i])
				if err != nil {
					errs[w] = err
					return
				}
				distances[i] = problem.Distance(problem.Observed, simulated)
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return distances, nil
}

// quantile returns the empirical quantile of the values
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}
