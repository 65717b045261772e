package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmbkit/simfetch/internal/assets"
	"github.com/cmbkit/simfetch/internal/config"
	"github.com/cmbkit/simfetch/internal/ctxlog"
	"github.com/cmbkit/simfetch/internal/dataset"
	"github.com/cmbkit/simfetch/internal/fetch"
	"github.com/cmbkit/simfetch/internal/linktable"
	"github.com/cmbkit/simfetch/internal/namer"
	"resty.dev/v3"
)

// downloadTimeout bounds a single archive download. Dataset archives run to
// gigabytes, so this is generous.
const downloadTimeout = 30 * time.Minute

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *config.Config
	registry *assets.Registry
	client   *resty.Client
	locator  *dataset.Locator
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Failures to load or wire configuration are fatal startup errors and panic;
// the entrypoint recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.")

	reg := assets.Builtin()

	handler, err := reg.Handler("config_json")
	if err != nil {
		panic(err)
	}
	dec, ok := handler.(assets.Decoder)
	if !ok {
		// Mismatch between code and registration, a programmer error.
		panic(fmt.Sprintf("handler 'config_json' (%T) does not implement assets.Decoder", handler))
	}

	table, err := linktable.Load(dec, cfgModel.LinkTablePath())
	if err != nil {
		panic(fmt.Errorf("failed to load link table: %w", err))
	}
	logger.Debug("Link table loaded.", "entries", len(table), "path", cfgModel.LinkTablePath())

	client := resty.New().SetTimeout(downloadTimeout)
	retriever := fetch.NewRetriever(client)

	pathNamer := namer.New(map[string]any{"root": cfgModel.FileSystem.Root})

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfgModel,
		registry: reg,
		client:   client,
		locator:  dataset.NewLocator(cfgModel, pathNamer, table, retriever),
	}
}

// Locator returns the application's dataset locator. This is primarily for testing.
func (a *App) Locator() *dataset.Locator {
	return a.locator
}

// Registry returns the application's asset-handler registry. This is primarily for testing.
func (a *App) Registry() *assets.Registry {
	return a.registry
}

// Close releases the application's network resources.
func (a *App) Close() error {
	return a.client.Close()
}
