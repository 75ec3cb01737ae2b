// Package sim implements the stochastic epidemic simulator driven by the
// calibration harness. The model is a daily-stepped stochastic SEIR process
// with case detection, imported infections as exogenous forcing, and
// date-scoped intervention policies.
//
// Scalar parameters read from the parameter map:
//
//	population      total population size (required, must be positive)
//	seed_infections initially infectious individuals
//	beta            transmission rate per infectious contact-day
//	incubation_rate daily probability of an exposed becoming infectious
//	recovery_rate   daily probability of an infectious recovering
//	detection_rate  baseline daily probability of detecting an infectious
//	import_rate     expected imported infections per day
package sim

import (
	"time"

	"github.com/epifit/calibration-core/internal/metrics"
	"github.com/epifit/calibration-core/internal/policy"
	"github.com/epifit/calibration-core/pkg/utils"
)

// Model is one simulator instance. It is not safe for concurrent use; each
// concurrent evaluation works on its own Clone.
type Model struct {
	// Params is the mutable scalar-parameter map written by the theta codec
	Params map[string]float64

	// Policies holds the scheduled per-date policy records
	Policies *policy.Set

	// Metrics accumulates the counters read back by the harness
	Metrics *metrics.Accumulator

	seed int64
	rng  *utils.RandSource

	susceptible int
	exposed     int
	infectious  int
	recovered   int

	// effective values under the currently active policies
	transmissionScale float64
	detectionRate     float64
	tracingProb       float64
	quarantineComply  float64
}

// NewModel creates a model from initial parameters. The parameter map is
// copied; the caller's map is not retained.
func NewModel(params map[string]float64, seed int64) *Model {
	copied := make(map[string]float64, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return &Model{
		Params:   copied,
		Policies: policy.NewSet(),
		Metrics:  metrics.NewAccumulator(),
		seed:     seed,
		rng:      utils.NewRandSource(seed),
	}
}

// Param returns a scalar parameter, or 0 when unset
func (m *Model) Param(name string) float64 {
	return m.Params[name]
}

// Reset rebuilds the compartment state from the current parameters and
// clears the metrics, ready for a fresh run over [first, last). The random
// source is reseeded so runs with identical parameters are reproducible.
func (m *Model) Reset(first, last time.Time) {
	m.rng = utils.NewRandSource(m.seed)
	m.Metrics.Reset()

	population := int(m.Param("population"))
	seeds := int(m.Param("seed_infections"))
	if seeds > population {
		seeds = population
	}

	m.susceptible = population - seeds
	m.exposed = 0
	m.infectious = seeds
	m.recovered = 0

	// Until a policy activates, baselines apply
	m.transmissionScale = 1
	m.detectionRate = m.Param("detection_rate")
	m.tracingProb = 0
	m.quarantineComply = 0
}

// Clone returns a deep copy of the model for an independent evaluation
// context. The clone draws its seed from the parent's random source, so
// clones made from the same parent differ from each other.
func (m *Model) Clone() *Model {
	params := make(map[string]float64, len(m.Params))
	for k, v := range m.Params {
		params[k] = v
	}
	seed := m.rng.Int63()
	return &Model{
		Params:            params,
		Policies:          m.Policies.Clone(),
		Metrics:           m.Metrics.Clone(),
		seed:              seed,
		rng:               utils.NewRandSource(seed),
		susceptible:       m.susceptible,
		exposed:           m.exposed,
		infectious:        m.infectious,
		recovered:         m.recovered,
		transmissionScale: m.transmissionScale,
		detectionRate:     m.detectionRate,
		tracingProb:       m.tracingProb,
		quarantineComply:  m.quarantineComply,
	}
}

// Compartments returns the current (susceptible, exposed, infectious,
// recovered) counts
func (m *Model) Compartments() (s, e, i, r int) {
	return m.susceptible, m.exposed, m.infectious, m.recovered
}
