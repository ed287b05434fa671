package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	modules []registry.Module

	// catalog is swapped as a whole on reload; readers never see a partial
	// registry.
	catalog atomic.Pointer[registry.Registry]
}

// NewApp is the constructor for the main application. Rendered output goes to
// outW and logs to logW. It builds the catalog from the built-in modules and
// the configured robot files; a file that cannot be loaded is a fatal startup
// error and panics. Integrity checks run later, in Run.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	a := &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		loader:  loader,
		modules: modules,
	}

	reg, err := a.buildRegistry(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	a.catalog.Store(reg)
	logger.Debug("Catalog ready.", "robots", reg.Len())

	return a
}

// buildRegistry creates a fresh registry holding the built-in robots plus
// every robot defined in the configured files.
func (a *App) buildRegistry(ctx context.Context) (*registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	reg := registry.New(a.config.AssetsDir)
	for _, mod := range a.modules {
		mod.Register(reg)
	}
	logger.Debug("All built-in robots registered.", "count", len(a.modules))

	if len(a.config.ConfigPaths) == 0 {
		return reg, nil
	}
	model, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, err
	}
	if err := reg.PopulateFromModel(ctx, model); err != nil {
		return nil, err
	}
	return reg, nil
}

// Registry returns the current catalog.
func (a *App) Registry() *registry.Registry {
	return a.catalog.Load()
}

// Reload rebuilds the catalog from the configured files and swaps it in when
// it loads and validates. On failure the previous catalog stays in place and
// the error is returned.
func (a *App) Reload(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	reg, err := a.buildRegistry(ctx)
	if err == nil {
		err = reg.ValidateRegistry(ctx)
	}
	if err != nil {
		a.logger.Error("Reload failed, keeping the previous catalog.", "error", err)
		return err
	}
	a.catalog.Store(reg)
	a.logger.Info("Catalog reloaded.", "robots", reg.Len())
	return nil
}
