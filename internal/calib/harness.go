package calib

import (
	"time"

	"github.com/epifit/calibration-core/internal/schema"
	"github.com/epifit/calibration-core/internal/sim"
	"github.com/epifit/calibration-core/internal/theta"
	"github.com/epifit/calibration-core/pkg/utils"
)

// Harness evaluates one candidate theta vector: it writes the vector into
// the simulator, replays the configured date range, and returns the daily
// new-positive series for comparison against the observations.
//
// A harness owns its model and mutates it in place, so a single harness
// must never be shared across concurrent evaluations; Clone gives each
// worker its own.
type Harness struct {
	Model  *sim.Model
	Schema *schema.Schema
	First  time.Time
	Last   time.Time
}

// Evaluate runs one candidate simulation. The returned series holds one
// new-positive count per day of [first, last): the delta of the cumulative
// positives between consecutive stepped days.
func (h *Harness) Evaluate(vec []float64) ([]float64, error) {
	if err := theta.Decode(vec, h.Schema, h.Model); err != nil {
		return nil, err
	}

	h.Model.Reset(h.First, h.Last)

	series := make([]float64, 0, utils.DaysBetween(h.First, h.Last))
	prev := 0.0
	for d := h.First; !d.After(h.Last); d = utils.AddDays(d, 1) {
		h.Model.ActivatePolicies(d)
		h.Model.ApplyForcing(d)
		if err := h.Model.RunEvents(d); err != nil {
			return nil, err
		}

		cumulative := float64(h.Model.Metrics.Positives())
		if !d.Equal(h.First) {
			series = append(series, cumulative-prev)
		}
		prev = cumulative
	}

	return series, nil
}

// Clone returns a harness with an independent model for a concurrent
// evaluation context
func (h *Harness) Clone() *Harness {
	return &Harness{
		Model:  h.Model.Clone(),
		Schema: h.Schema,
		First:  h.First,
		Last:   h.Last,
	}
}
