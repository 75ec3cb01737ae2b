package config

import (
	"fmt"
	"os"
)

// LoadConfig loads and parses a calibration configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	// Validate log level (empty means default)
	if cfg.LogLevel != "" {
		validLogLevels := map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		}
		if !validLogLevels[cfg.LogLevel] {
			return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
		}
	}

	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if cfg.TrainingData == "" {
		return fmt.Errorf("training_data must be set")
	}
	if cfg.ParamsFile == "" {
		return fmt.Errorf("params_file must be set")
	}

	first, err := cfg.FirstDate()
	if err != nil {
		return fmt.Errorf("invalid firstday: %w", err)
	}
	last, err := cfg.LastDate()
	if err != nil {
		return fmt.Errorf("invalid lastday: %w", err)
	}
	if !first.Before(last) {
		return fmt.Errorf("firstday %s must be before lastday %s", cfg.FirstDay, cfg.LastDay)
	}

	for name, value := range cfg.Demographics {
		if value < 0 {
			return fmt.Errorf("demographic %s cannot be negative, got %f", name, value)
		}
	}

	for name, value := range cfg.SolverOptions {
		if value < 0 {
			return fmt.Errorf("solver option %s cannot be negative, got %f", name, value)
		}
	}

	return nil
}
