package hallrush

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/hallrush/internal/catalog"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/nfrund/hallrush/internal/middleware"
	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/modules/hallrush/components"
	"github.com/nfrund/hallrush/internal/registry"
	"github.com/nfrund/hallrush/internal/websocket"
)

// KeyService is the type-safe key for accessing the game service.
var KeyService = registry.Key[*Service]("hallrush.Service")

// Options tunes the module. The zero value is ready for production use.
type Options struct {
	Randomizer game.Randomizer
	Clock      func() time.Time
	RateLimit  *middleware.RateLimit
}

// HallRushModule serves the game pages and the live board feed.
type HallRushModule struct {
	module.BaseModule
	opts    Options
	service *Service
	feed    *websocket.Bridge
	cancel  context.CancelFunc
}

// New creates the module.
func New(opts Options) *HallRushModule {
	return &HallRushModule{opts: opts}
}

func (m *HallRushModule) Name() string {
	return "hallrush"
}

// Register builds the game service from the shared infrastructure.
func (m *HallRushModule) Register(reg *registry.Registry) error {
	slog.Info("Initializing hallrush game service")

	cardTimer := DefaultCardTimer
	if cfg := reg.Config(); cfg != nil {
		cardTimer = cfg.CardTimer
	}

	m.service = NewService(ServiceDeps{
		Store:     registry.MustGet(reg, registry.StateStoreKey),
		Log:       registry.MustGet(reg, registry.EventLogKey),
		Catalog:   registry.MustGet(reg, registry.CatalogKey),
		Engine:    game.NewEngine(m.opts.Randomizer),
		Publisher: registry.MustGet(reg, registry.PublisherKey),
		Clock:     m.opts.Clock,
		CardTimer: cardTimer,
	})
	registry.Set(reg, KeyService, m.service)
	return nil
}

// Boot starts the live feed and registers the routes.
func (m *HallRushModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	service := registry.MustGet(reg, KeyService)
	boardConfig := registry.MustGet(reg, registry.CatalogKey)
	renderer := registry.MustGet(reg, registry.RendererKey)

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	var subscriber *Subscriber
	m.feed = websocket.NewBridge(func(ctx context.Context) ([]byte, error) {
		return subscriber.Snapshot(ctx)
	})
	subscriber = NewSubscriber(registry.MustGet(reg, registry.SubscriberKey), service, boardConfig, renderer, m.feed)

	go m.feed.Run(runCtx)
	if err := subscriber.Start(runCtx); err != nil {
		cancel()
		return fmt.Errorf("start hallrush subscriber: %w", err)
	}

	if cfg := reg.Config(); cfg != nil && cfg.WatchDataDir {
		watcher := NewDataWatcher(cfg.DataDir, []string{config.StateFile, config.LogFile, catalog.TilesFile, catalog.CardsFile}, registry.MustGet(reg, registry.PublisherKey))
		if err := watcher.Start(runCtx); err != nil {
			// Live refresh on external edits is optional.
			slog.Warn("Data directory watcher not started", "error", err)
		}
	}

	slog.Info("Booting HallRushModule: Setting up routes...")
	limit := middleware.DefaultRateLimit
	if m.opts.RateLimit != nil {
		limit = *m.opts.RateLimit
	}
	limiter := middleware.RateLimiter(limit)

	h := NewHandler(service, boardConfig, renderer)
	g.GET("/setup", h.SetupGet)
	g.POST("/start", h.StartPost, limiter)
	g.GET("/board", h.BoardGet)
	g.GET("/roll", h.Roll, limiter)
	g.POST("/roll", h.Roll, limiter)
	g.GET("/draw_card", h.DrawCardGet)
	g.GET("/winner", h.WinnerGet)
	g.GET("/reset", h.ResetGet)
	g.GET("/api/state", h.StateGet)
	g.GET(components.BoardFeed, m.feed.Handler())
	return nil
}

// Shutdown stops the live feed and disconnects every viewer.
func (m *HallRushModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HallRushModule...")
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
