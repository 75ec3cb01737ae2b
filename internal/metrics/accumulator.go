// Package metrics accumulates the epidemic counters the calibration
// harness reads from the simulator, most importantly the cumulative count
// of detected positives.
package metrics

// Accumulator collects cumulative counters over one simulation run. It is
// reset at the start of every evaluation; each evaluation context owns its
// own accumulator, so no locking is needed.
type Accumulator struct {
	positives  int
	infections int
	recoveries int
	imported   int

	// dailyPositives records new detections per stepped day, in step order
	dailyPositives []int
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Reset clears all counters for a fresh run
func (a *Accumulator) Reset() {
	a.positives = 0
	a.infections = 0
	a.recoveries = 0
	a.imported = 0
	a.dailyPositives = a.dailyPositives[:0]
}

// AddPositives records newly detected cases for the current day
func (a *Accumulator) AddPositives(n int) {
	a.positives += n
	a.dailyPositives = append(a.dailyPositives, n)
}

// AddInfections records new infections
func (a *Accumulator) AddInfections(n int) {
	a.infections += n
}

// AddRecoveries records new recoveries
func (a *Accumulator) AddRecoveries(n int) {
	a.recoveries += n
}

// AddImported records externally seeded infections
func (a *Accumulator) AddImported(n int) {
	a.imported += n
}

// Positives returns the cumulative detected-case count
func (a *Accumulator) Positives() int {
	return a.positives
}

// Infections returns the cumulative infection count
func (a *Accumulator) Infections() int {
	return a.infections
}

// Recoveries returns the cumulative recovery count
func (a *Accumulator) Recoveries() int {
	return a.recoveries
}

// Imported returns the cumulative imported-infection count
func (a *Accumulator) Imported() int {
	return a.imported
}

// DailyPositives returns the per-day new-detection series recorded so far
func (a *Accumulator) DailyPositives() []int {
	out := make([]int, len(a.dailyPositives))
	copy(out, a.dailyPositives)
	return out
}

// Clone returns an independent copy of the accumulator
func (a *Accumulator) Clone() *Accumulator {
	cloned := &Accumulator{
		positives:  a.positives,
		infections: a.infections,
		recoveries: a.recoveries,
		imported:   a.imported,
	}
	cloned.dailyPositives = append(cloned.dailyPositives, a.dailyPositives...)
	return cloned
}
