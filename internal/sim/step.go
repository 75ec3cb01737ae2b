package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/epifit/calibration-core/internal/policy"
	"github.com/epifit/calibration-core/pkg/utils"
)

// ActivatePolicies applies every policy whose effective date is at or
// before the given date, recomputing the model's effective rates
func (m *Model) ActivatePolicies(date time.Time) {
	m.transmissionScale = 1
	m.detectionRate = m.Param("detection_rate")
	m.tracingProb = 0
	m.quarantineComply = 0

	if rec, ok := m.Policies.ActiveAt(policy.KindDistancing, date); ok {
		d := rec.(*policy.Distancing)
		// Independent reductions compose multiplicatively
		m.transmissionScale = (1 - d.Contact) * (1 - d.Work) * (1 - d.School) * (1 - d.Home)
		m.transmissionScale = utils.ClampFloat64(m.transmissionScale, 0, 1)
	}
	if rec, ok := m.Policies.ActiveAt(policy.KindTesting, date); ok {
		t := rec.(*policy.Testing)
		m.detectionRate = utils.ClampFloat64(m.detectionRate+t.Rate, 0, 1)
	}
	if rec, ok := m.Policies.ActiveAt(policy.KindTracing, date); ok {
		m.tracingProb = utils.ClampFloat64(rec.(*policy.Tracing).Prob, 0, 1)
	}
	if rec, ok := m.Policies.ActiveAt(policy.KindQuarantine, date); ok {
		m.quarantineComply = utils.ClampFloat64(rec.(*policy.Quarantine).Compliance, 0, 1)
	}
}

// ApplyForcing seeds exogenous imported infections for the day
func (m *Model) ApplyForcing(date time.Time) {
	imports := m.rng.Poisson(m.Param("import_rate"))
	if imports == 0 {
		return
	}
	if imports > m.susceptible {
		imports = m.susceptible
	}
	m.susceptible -= imports
	m.exposed += imports
	m.Metrics.AddImported(imports)
}

// RunEvents executes one day of stochastic state transitions and updates
// the metrics. Errors here abort the whole calibration run.
func (m *Model) RunEvents(date time.Time) error {
	population := m.Param("population")
	if population <= 0 {
		return fmt.Errorf("simulation step at %s: population must be positive, got %f",
			utils.FormatDate(date), population)
	}

	beta := m.Param("beta") * m.transmissionScale
	pressure := beta * float64(m.infectious) / population
	pInfect := 1 - math.Exp(-pressure)

	newExposed := m.rng.Binomial(m.susceptible, pInfect)
	newInfectious := m.rng.Binomial(m.exposed, m.Param("incubation_rate"))
	newRecovered := m.rng.Binomial(m.infectious, m.Param("recovery_rate"))
	newDetected := m.rng.Binomial(m.infectious, m.detectionRate)

	// Detected cases that comply with quarantine stop transmitting
	isolated := m.rng.Binomial(newDetected, m.quarantineComply)

	// Traced contacts of detected cases are pulled out of the exposed pool
	tracedPool := utils.Clamp(newDetected, 0, m.exposed)
	traced := m.rng.Binomial(tracedPool, m.tracingProb)

	m.susceptible -= newExposed
	m.exposed += newExposed - newInfectious - traced
	m.infectious += newInfectious - newRecovered - isolated
	m.recovered += newRecovered + isolated + traced

	if m.exposed < 0 {
		m.exposed = 0
	}
	if m.infectious < 0 {
		m.infectious = 0
	}

	m.Metrics.AddInfections(newExposed)
	m.Metrics.AddRecoveries(newRecovered + isolated)
	m.Metrics.AddPositives(newDetected)

	return nil
}
