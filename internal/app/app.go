// Package app wires the core services and feature modules of the server.
package app

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/modules/hallrush"
	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/nfrund/hallrush/internal/registry"
	"github.com/nfrund/hallrush/internal/rendering"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Application holds everything the server needs to run.
type Application struct {
	Config   *config.Config
	Injector *do.RootScope
	Registry *registry.Registry
	Renderer *rendering.UniversalRenderer
	Modules  []module.Module
}

// New resolves the core services on fs and creates the modules.
func New(cfg *config.Config, fs afero.Fs, opts hallrush.Options) (*Application, error) {
	injector := NewInjector(cfg, fs)

	reg, err := do.Invoke[*registry.Registry](injector)
	if err != nil {
		injector.Shutdown()
		return nil, fmt.Errorf("wire core services: %w", err)
	}

	return &Application{
		Config:   cfg,
		Injector: injector,
		Registry: reg,
		Renderer: do.MustInvoke[*rendering.UniversalRenderer](injector),
		Modules:  NewModules(opts),
	}, nil
}

// Close stops the bus, flushes tracing and shuts the injector down.
func (a *Application) Close() {
	if bus, err := do.Invoke[*pubsub.WatermillBridge](a.Injector); err == nil {
		if err := bus.Close(); err != nil {
			slog.Warn("Failed to close event bus", "error", err)
		}
	}
	if tracing, err := do.Invoke[*Tracing](a.Injector); err == nil {
		tracing.Close()
	}
	// The injector shuts down the state store.
	a.Injector.Shutdown()
}
