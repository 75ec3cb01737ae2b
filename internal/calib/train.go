// Package calib wires the calibration pieces together: it prepares the
// observed data, binds the evaluation harness to a simulator, and drives
// the ABC solver to an accepted particle population summarized as
// per-dimension posterior quantiles.
package calib

import (
	"context"
	"fmt"
	"sync"

	"github.com/epifit/calibration-core/internal/abc"
	"github.com/epifit/calibration-core/internal/loss"
	"github.com/epifit/calibration-core/internal/schema"
	"github.com/epifit/calibration-core/internal/sim"
	"github.com/epifit/calibration-core/pkg/config"
	"github.com/epifit/calibration-core/pkg/logger"
)

// priorMax bounds the hard-coded Uniform(0, priorMax) prior on every free
// dimension. A fixed prior is a modeling limitation of this calibrator,
// not a general framework choice.
const priorMax = 0.05

// Train calibrates the simulator against the observed series and returns
// the posterior quantile table, which is also persisted into the
// configured output directory.
func Train(ctx context.Context, cfg *config.Config) (*ResultTable, error) {
	calSchema, dim, err := schema.Build(&cfg.Unknowns)
	if err != nil {
		return nil, fmt.Errorf("failed to build calibration schema: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("unknowns declare no free dimensions")
	}

	first, err := cfg.FirstDate()
	if err != nil {
		return nil, err
	}
	last, err := cfg.LastDate()
	if err != nil {
		return nil, err
	}

	rows, err := LoadTrainingData(cfg.TrainingData)
	if err != nil {
		return nil, err
	}
	observed := PrepareObservedSeries(rows, first, last)
	logger.Info("training data prepared",
		"rows", len(rows),
		"days", len(observed),
		"firstday", cfg.FirstDay,
		"lastday", cfg.LastDay)

	params, err := LoadParams(cfg.ParamsFile)
	if err != nil {
		return nil, err
	}
	params = MergeDemographics(params, cfg.Demographics)

	model := sim.NewModel(params, cfg.Seed)
	base := &Harness{Model: model, Schema: calSchema, First: first, Last: last}
	logger.Info("model initialized",
		"parameters", len(params),
		"free_dimensions", dim)

	// Each solver worker gets its own cloned harness; cloning draws from
	// the base model's random source, so serialize it.
	var mu sync.Mutex
	factory := func() abc.Evaluator {
		mu.Lock()
		worker := base.Clone()
		mu.Unlock()
		return worker.Evaluate
	}

	etarget, rest, found := cfg.EpsilonTarget()
	if !found {
		logger.Warn("solver_options has no etarget, running all generations")
	}
	opts := abc.OptionsFromMap(rest, etarget)
	if opts.Seed == 0 {
		opts.Seed = cfg.Seed
	}

	problem := abc.Problem{
		Prior:        abc.NewUniformPrior(0, priorMax, dim, uint64(cfg.Seed)+1),
		Observed:     observed,
		NewEvaluator: factory,
		Distance:     loss.RMSE,
	}

	logger.Info("training started",
		"population", opts.PopulationSize,
		"max_generations", opts.MaxGenerations,
		"etarget", etarget,
		"workers", opts.Workers)

	result, err := abc.NewDESolver(opts).Solve(ctx, problem)
	if err != nil {
		return nil, fmt.Errorf("calibration failed: %w", err)
	}
	if !result.Converged {
		logger.Warn("solver did not reach the target tolerance",
			"epsilon", result.Epsilon,
			"generations", result.Generations)
	}

	table := Summarize(result.Particles)
	path, err := table.WriteFile(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("training finished",
		"converged", result.Converged,
		"generations", result.Generations,
		"epsilon", result.Epsilon,
		"output", path)

	return table, nil
}
