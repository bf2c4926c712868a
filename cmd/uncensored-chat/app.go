package main

import (
	"fmt"
	"os"

	"github.com/blackjackptit/uncensored-models/pkg/config"
	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
	"github.com/blackjackptit/uncensored-models/pkg/models"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

// app bundles the dependencies shared by every subcommand.
type app struct {
	cfg      config.Config
	logger   loggerpkg.Logger
	registry models.Registry
	ollama   *runner.Ollama
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logger loggerpkg.Logger = loggerpkg.NopLogger{}
	if cfg.Verbose {
		logger = loggerpkg.NewWriterLogger(os.Stderr)
	}
	loggerpkg.Debug(cfg.Verbose, logger, "config loaded", map[string]any{
		"binary":      cfg.Binary,
		"model_dir":   cfg.ModelDir,
		"timeout":     cfg.Timeout.String(),
		"models_file": cfg.ModelsFile,
		"markdown":    cfg.Markdown,
	})

	reg, err := models.Load(cfg.ModelsFile)
	if err != nil {
		return nil, fmt.Errorf("load models: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		ollama:   runner.New(cfg, runner.WithLogger(logger)),
	}, nil
}
