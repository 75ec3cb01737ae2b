package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/epifit/calibration-core/pkg/utils"
)

// Config represents the calibration run configuration
type Config struct {
	LogLevel     string             `yaml:"log_level"`
	OutputDir    string             `yaml:"output_dir"`
	TrainingData string             `yaml:"training_data"`
	ParamsFile   string             `yaml:"params_file"`
	Demographics map[string]float64 `yaml:"demographics,omitempty"`
	FirstDay     string             `yaml:"firstday"`
	LastDay      string             `yaml:"lastday"`
	Seed         int64              `yaml:"seed,omitempty"`
	Unknowns     Unknowns           `yaml:"unknowns"`

	// SolverOptions are forwarded to the solver untouched, except for the
	// reserved "etarget" key which is consumed as the convergence tolerance.
	SolverOptions map[string]float64 `yaml:"solver_options,omitempty"`
}

// Unknowns declares which scalar parameters and date-indexed policy fields
// are free calibration variables. Values keep their raw YAML shape ("a name
// or a list of names"); the schema builder validates them into a typed
// schema before any simulation runs.
type Unknowns struct {
	Params           yaml.Node            `yaml:"params,omitempty"`
	DistancingPolicy map[string]yaml.Node `yaml:"distancing_policy,omitempty"`
	TestingPolicy    map[string]yaml.Node `yaml:"testing_policy,omitempty"`
	TracingPolicy    map[string]yaml.Node `yaml:"tracing_policy,omitempty"`
	QuarantinePolicy map[string]yaml.Node `yaml:"quarantine_policy,omitempty"`
}

// FirstDate parses the firstday field as a calendar date
func (c *Config) FirstDate() (time.Time, error) {
	return utils.ParseDate(c.FirstDay)
}

// LastDate parses the lastday field as a calendar date
func (c *Config) LastDate() (time.Time, error) {
	return utils.ParseDate(c.LastDay)
}

// EpsilonTarget extracts the reserved "etarget" solver option and returns
// the remaining options. The second return reports whether etarget was set.
func (c *Config) EpsilonTarget() (float64, map[string]float64, bool) {
	rest := make(map[string]float64, len(c.SolverOptions))
	etarget := 0.0
	found := false
	for k, v := range c.SolverOptions {
		if k == "etarget" {
			etarget = v
			found = true
			continue
		}
		rest[k] = v
	}
	return etarget, rest, found
}
