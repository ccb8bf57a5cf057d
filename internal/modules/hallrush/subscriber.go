package hallrush

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/nfrund/hallrush/internal/modules/hallrush/components"
	"github.com/nfrund/hallrush/internal/modules/hallrush/events"
	"github.com/nfrund/hallrush/internal/modules/hallrush/topics"
	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/nfrund/hallrush/internal/rendering"
)

// Broadcaster fans a rendered fragment out to every board viewer.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Subscriber turns game events into live board updates.
type Subscriber struct {
	subscriber pubsub.Subscriber
	service    *Service
	catalog    Catalog
	renderer   rendering.Renderer
	feed       Broadcaster
}

// NewSubscriber creates a Subscriber.
func NewSubscriber(sub pubsub.Subscriber, service *Service, catalog Catalog, renderer rendering.Renderer, feed Broadcaster) *Subscriber {
	return &Subscriber{
		subscriber: sub,
		service:    service,
		catalog:    catalog,
		renderer:   renderer,
		feed:       feed,
	}
}

// Start subscribes to every Hall Rush topic.
func (s *Subscriber) Start(ctx context.Context) error {
	slog.Info("Starting hallrush module subscriber")

	subscriptions := []func() error{
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.GameStarted, func(ctx context.Context, e events.GameStarted) error {
				return s.refresh(ctx, topics.GameStarted.Name(), e.GameID)
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.TurnResolved, func(ctx context.Context, e events.TurnResolved) error {
				return s.refresh(ctx, topics.TurnResolved.Name(), e.GameID)
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.CardDrawn, func(ctx context.Context, e events.CardDrawn) error {
				return s.refresh(ctx, topics.CardDrawn.Name(), e.GameID)
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.GameWon, func(ctx context.Context, e events.GameWon) error {
				slog.InfoContext(ctx, "Game won", "game_id", e.GameID, "winner", e.Name)
				return s.refresh(ctx, topics.GameWon.Name(), e.GameID)
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.GameReset, func(ctx context.Context, e events.GameReset) error {
				return s.refresh(ctx, topics.GameReset.Name(), e.GameID)
			})
		},
		func() error {
			return pubsub.Subscribe(ctx, s.subscriber, topics.BoardChanged, func(ctx context.Context, e events.BoardChanged) error {
				slog.InfoContext(ctx, "Game data changed on disk", "path", e.Path, "op", e.Op)
				return s.refresh(ctx, topics.BoardChanged.Name(), "")
			})
		},
	}

	for _, subscribe := range subscriptions {
		if err := subscribe(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Subscriber) refresh(ctx context.Context, topic, gameID string) error {
	payload, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "Pushing board update", "topic", topic, "game_id", gameID, "bytes", len(payload))
	s.feed.Broadcast(payload)
	return nil
}

// Snapshot renders the current track and log as out-of-band fragments. It
// also greets viewers when they connect.
func (s *Subscriber) Snapshot(ctx context.Context) ([]byte, error) {
	board, err := s.service.Board(ctx)
	if errors.Is(err, domain.ErrStateUnavailable) {
		board.Log, err = s.service.Log(ctx)
	}
	if err != nil {
		return nil, err
	}

	tiles, err := s.catalog.Tiles(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Tile table unavailable for live update", "error", err)
		tiles = game.TileTable{}
	}
	return s.renderer.RenderComponent(ctx, components.LiveUpdate(board.Session, tiles, board.Log))
}
