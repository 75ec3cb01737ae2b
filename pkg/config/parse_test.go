package config

import (
	"strings"
	"testing"
)

const validConfigYAML = `
log_level: info
output_dir: out
training_data: data/cases.tsv
params_file: data/params.tsv
firstday: 2020-03-01
lastday: 2020-06-01
seed: 42
demographics:
  population: 500000
  household_size: 2.3
unknowns:
  params: [beta, detection_rate]
  distancing_policy:
    2020-03-15: [contact, work]
    2020-04-01: contact
solver_options:
  etarget: 25
  npop: 64
`

func TestParseConfigYAML(t *testing.T) {
	cfg, err := ParseConfigYAMLString(validConfigYAML)
	if err != nil {
		t.Fatalf("ParseConfigYAML failed: %v", err)
	}

	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, expected %q", cfg.OutputDir, "out")
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", cfg.Seed)
	}
	if cfg.Demographics["population"] != 500000 {
		t.Errorf("population = %f, expected 500000", cfg.Demographics["population"])
	}
	if len(cfg.Unknowns.DistancingPolicy) != 2 {
		t.Errorf("distancing_policy entries = %d, expected 2", len(cfg.Unknowns.DistancingPolicy))
	}

	first, err := cfg.FirstDate()
	if err != nil {
		t.Fatalf("FirstDate failed: %v", err)
	}
	last, err := cfg.LastDate()
	if err != nil {
		t.Fatalf("LastDate failed: %v", err)
	}
	if !first.Before(last) {
		t.Errorf("firstday %v not before lastday %v", first, last)
	}
}

func TestParseConfigYAMLInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			"Missing output dir",
			func(s string) string { return strings.Replace(s, "output_dir: out", "", 1) },
			"output_dir",
		},
		{
			"Missing training data",
			func(s string) string { return strings.Replace(s, "training_data: data/cases.tsv", "", 1) },
			"training_data",
		},
		{
			"Missing params file",
			func(s string) string { return strings.Replace(s, "params_file: data/params.tsv", "", 1) },
			"params_file",
		},
		{
			"Bad log level",
			func(s string) string { return strings.Replace(s, "log_level: info", "log_level: loud", 1) },
			"log_level",
		},
		{
			"Bad firstday",
			func(s string) string { return strings.Replace(s, "firstday: 2020-03-01", "firstday: nope", 1) },
			"firstday",
		},
		{
			"Reversed date range",
			func(s string) string { return strings.Replace(s, "lastday: 2020-06-01", "lastday: 2020-01-01", 1) },
			"before",
		},
		{
			"Negative solver option",
			func(s string) string { return strings.Replace(s, "npop: 64", "npop: -1", 1) },
			"solver option",
		},
		{
			"Not YAML",
			func(s string) string { return "{{{" },
			"parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigYAMLString(tt.mutate(validConfigYAML))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, expected it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEpsilonTarget(t *testing.T) {
	cfg, err := ParseConfigYAMLString(validConfigYAML)
	if err != nil {
		t.Fatalf("ParseConfigYAML failed: %v", err)
	}

	etarget, rest, found := cfg.EpsilonTarget()
	if !found {
		t.Fatal("etarget not found")
	}
	if etarget != 25 {
		t.Errorf("etarget = %f, expected 25", etarget)
	}
	if _, ok := rest["etarget"]; ok {
		t.Error("etarget should be removed from remaining options")
	}
	if rest["npop"] != 64 {
		t.Errorf("npop = %f, expected 64 to pass through", rest["npop"])
	}
}

func TestEpsilonTargetAbsent(t *testing.T) {
	cfg := &Config{SolverOptions: map[string]float64{"npop": 10}}
	_, rest, found := cfg.EpsilonTarget()
	if found {
		t.Error("found etarget in options without one")
	}
	if rest["npop"] != 10 {
		t.Errorf("npop = %f, expected 10", rest["npop"])
	}
}
