package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/regen/internal/config"
	"github.com/vk/regen/internal/ctxlog"
	"github.com/vk/regen/internal/execx"
)

// App encapsulates the pipeline's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	model  *config.Model
	runner execx.Runner
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded
// configuration model. A nil runner selects the real os/exec-backed runner.
func NewApp(outW io.Writer, appConfig *Config, runner execx.Runner) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "config_path", appConfig.ConfigPath)

	if runner == nil {
		runner = execx.OSRunner{}
	}

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    appConfig,
		model:  model,
		runner: runner,
	}
}

// Model returns the loaded configuration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
