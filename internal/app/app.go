package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/hrmkit/internal/layout"
	"github.com/vk/hrmkit/internal/rename"
	"github.com/vk/hrmkit/internal/scheme"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	errW    io.Writer
	logger  *slog.Logger
	loader  layout.Loader
	scheme  *scheme.Scheme
	renamer *rename.Renamer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the naming
// scheme resolved from configuration.
func NewApp(outW, errW io.Writer, cfg *Config, loader layout.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	namingScheme := scheme.Default()
	if cfg.SchemePath != "" {
		loaded, err := scheme.LoadHCL(cfg.SchemePath)
		if err != nil {
			// A failure to load the scheme is a fatal startup error.
			panic(fmt.Errorf("failed to load naming scheme: %w", err))
		}
		namingScheme = loaded
		logger.Debug("Naming scheme loaded from file.", "path", cfg.SchemePath)
	}

	return &App{
		outW:    outW,
		errW:    errW,
		logger:  logger,
		loader:  loader,
		scheme:  namingScheme,
		renamer: rename.New(namingScheme),
	}
}
