package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calibration.yaml")
	if err := os.WriteFile(path, []byte(validConfigYAML), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TrainingData != "data/cases.tsv" {
		t.Errorf("TrainingData = %q, expected %q", cfg.TrainingData, "data/cases.tsv")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigInvalidContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("output_dir: out"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for incomplete config")
	}
}
