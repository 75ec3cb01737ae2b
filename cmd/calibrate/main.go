package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/epifit/calibration-core/internal/calib"
	"github.com/epifit/calibration-core/pkg/config"
	"github.com/epifit/calibration-core/pkg/logger"
)

func main() {
	var configPath string
	var logLevel string
	var logFormat string

	flag.StringVar(&configPath, "config", "calibration.yaml", "calibration config file")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	flag.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger.SetDefault(logger.New(level, logFormat, os.Stderr))
	logger.Info("config loaded",
		"path", configPath,
		"firstday", cfg.FirstDay,
		"lastday", cfg.LastDay,
		"output_dir", cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := calib.Train(ctx, cfg); err != nil {
		logger.Error("calibration failed", "error", err)
		stop()
		os.Exit(1)
	}
}
