package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/hallrush/internal/catalog"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/nfrund/hallrush/internal/registry"
	"github.com/nfrund/hallrush/internal/rendering"
	"github.com/nfrund/hallrush/internal/storage"
	"github.com/nfrund/hallrush/internal/storage/sqlite"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
)

// Version is reported in traces and by the CLI. It is set at build time.
var Version = "dev"

// Tracing is the bus tracer together with its flush function.
type Tracing struct {
	Tracer   trace.Tracer
	shutdown func()
}

// Close flushes pending spans.
func (t *Tracing) Close() {
	if t.shutdown != nil {
		t.shutdown()
	}
}

// NewInjector declares how every core service is built. Services are
// constructed lazily on first use, so the CLI only pays for what it touches.
func NewInjector(cfg *config.Config, fs afero.Fs) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, fs)

	do.Provide(injector, provideFiles)
	do.Provide(injector, provideStateStore)
	do.Provide(injector, provideEventLog)
	do.Provide(injector, provideCatalog)
	do.Provide(injector, provideTracing)
	do.Provide(injector, provideBus)
	do.Provide(injector, provideRenderer)
	do.Provide(injector, provideRegistry)
	return injector
}

func provideFiles(i do.Injector) (*storage.AferoStore, error) {
	return storage.NewAferoStore(do.MustInvoke[afero.Fs](i)), nil
}

func provideStateStore(i do.Injector) (storage.StateStore, error) {
	cfg := do.MustInvoke[*config.Config](i)

	switch cfg.StateBackend {
	case config.BackendSQLite:
		fs := do.MustInvoke[afero.Fs](i)
		if err := fs.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		store, err := sqlite.Open(cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		slog.Info("Using SQLite state store", "path", cfg.DatabasePath())
		return store, nil
	default:
		slog.Debug("Using file state store", "path", cfg.StatePath())
		return storage.NewFileStateStore(do.MustInvoke[*storage.AferoStore](i), cfg.StatePath()), nil
	}
}

func provideEventLog(i do.Injector) (storage.EventLog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return storage.NewFileEventLog(do.MustInvoke[*storage.AferoStore](i), cfg.LogPath()), nil
}

func provideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return catalog.New(do.MustInvoke[afero.Fs](i), cfg.DataDir), nil
}

func provideTracing(i do.Injector) (*Tracing, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tracer, shutdown, err := pubsub.SetupOTel(context.Background(), cfg.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("set up tracing: %w", err)
	}
	if cfg.Tracing.Enabled {
		slog.Info("Event bus tracing enabled", "zipkin_url", cfg.Tracing.ZipkinURL)
	}
	return &Tracing{Tracer: tracer, shutdown: shutdown}, nil
}

func provideBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	tracing := do.MustInvoke[*Tracing](i)
	return pubsub.NewWatermillBridge(tracing.Tracer), nil
}

func provideRenderer(i do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

// provideRegistry publishes the core services for feature modules.
func provideRegistry(i do.Injector) (*registry.Registry, error) {
	stateStore, err := do.Invoke[storage.StateStore](i)
	if err != nil {
		return nil, err
	}
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)

	reg := registry.New(do.MustInvoke[*config.Config](i))
	registry.Set(reg, registry.PublisherKey, pubsub.Publisher(bus))
	registry.Set(reg, registry.SubscriberKey, pubsub.Subscriber(bus))
	registry.Set(reg, registry.RendererKey, rendering.Renderer(do.MustInvoke[*rendering.UniversalRenderer](i)))
	registry.Set(reg, registry.StateStoreKey, stateStore)
	registry.Set(reg, registry.EventLogKey, do.MustInvoke[storage.EventLog](i))
	registry.Set(reg, registry.CatalogKey, do.MustInvoke[*catalog.Catalog](i))
	return reg, nil
}
