package hallrush

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/nfrund/hallrush/internal/modules/hallrush/events"
	"github.com/nfrund/hallrush/internal/modules/hallrush/topics"
	"github.com/nfrund/hallrush/internal/pubsub"
	"github.com/nfrund/hallrush/internal/storage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Narration written when the journal is restarted.
const (
	LineGameStarted = "🎲 Game started!"
	LineGameReset   = "🔄 Game reset."
)

// DefaultCardTimer is how long the board may be viewed before a card is forced.
const DefaultCardTimer = 120 * time.Second

// Catalog supplies the static board configuration.
type Catalog interface {
	Tiles(ctx context.Context) (game.TileTable, error)
	Deck(ctx context.Context) (game.Deck, error)
}

// BoardView is everything the board page shows.
type BoardView struct {
	Session *game.Session
	Log     []string
}

// ServiceDeps holds the collaborators of a Service. Clock, NewID and
// CardTimer are optional.
type ServiceDeps struct {
	Store     storage.StateStore
	Log       storage.EventLog
	Catalog   Catalog
	Engine    *game.Engine
	Publisher pubsub.Publisher
	Clock     func() time.Time
	NewID     func() string
	CardTimer time.Duration
}

// Service orchestrates one request at a time: load, resolve, persist, publish.
type Service struct {
	store     storage.StateStore
	log       storage.EventLog
	catalog   Catalog
	engine    *game.Engine
	publisher pubsub.Publisher
	now       func() time.Time
	newID     func() string
	cardTimer time.Duration
}

// NewService creates a Service.
func NewService(deps ServiceDeps) *Service {
	s := &Service{
		store:     deps.Store,
		log:       deps.Log,
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		publisher: deps.Publisher,
		now:       deps.Clock,
		newID:     deps.NewID,
		cardTimer: deps.CardTimer,
	}
	if s.engine == nil {
		s.engine = game.NewEngine(nil)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.cardTimer <= 0 {
		s.cardTimer = DefaultCardTimer
	}
	return s
}

// NormalizeNames collapses whitespace and title-cases player names.
func NormalizeNames(names []string) []string {
	// A Caser keeps state, so each call gets its own.
	titler := cases.Title(language.English)
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = titler.String(strings.Join(strings.Fields(name), " "))
	}
	return out
}

// Start begins a new game for the given players.
func (s *Service) Start(ctx context.Context, names []string) (*game.Session, error) {
	if len(names) == 0 || len(names) > game.MaxPlayers {
		return nil, fmt.Errorf("need between 1 and %d players, got %d", game.MaxPlayers, len(names))
	}

	normalized := NormalizeNames(names)
	for i, name := range normalized {
		if name == "" {
			return nil, fmt.Errorf("player %d needs a name", i+1)
		}
	}

	roster := game.NewRoster(normalized)
	session := game.NewSession(s.newID(), roster, s.now().UTC())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save new game: %w", err)
	}
	if err := s.log.Start(ctx, LineGameStarted); err != nil {
		return nil, err
	}

	players := make([]string, len(roster))
	for i, p := range roster {
		players[i] = p.Name
	}
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, topics.GameStarted, session.GameID, events.GameStarted{
			GameID:  session.GameID,
			Players: players,
		})
	})
	return session, nil
}

// Roll resolves the current player's turn.
func (s *Service) Roll(ctx context.Context) (*game.Session, game.RollResult, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return nil, game.RollResult{}, err
	}
	if session.Finished() {
		return session, game.RollResult{}, domain.ErrGameOver
	}

	tiles, err := s.catalog.Tiles(ctx)
	if err != nil {
		return nil, game.RollResult{}, err
	}
	result, err := s.engine.ResolveRoll(session.State, session.Roster, tiles)
	if err != nil {
		return nil, game.RollResult{}, err
	}

	if err := s.log.Append(ctx, result.Lines...); err != nil {
		return nil, game.RollResult{}, err
	}
	session.State = result.State
	if result.Outcome.Kind != game.OutcomeDrawCard {
		if err := s.store.Save(ctx, session); err != nil {
			return nil, game.RollResult{}, fmt.Errorf("save turn: %w", err)
		}
	}

	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, topics.TurnResolved, session.GameID, events.TurnResolved{
			GameID:  session.GameID,
			Player:  result.Outcome.Player,
			Roll:    result.Outcome.Roll,
			Outcome: result.Outcome.Kind.String(),
			Lines:   result.Lines,
		})
	})
	if result.Outcome.Kind == game.OutcomeWin {
		s.publish(ctx, func() error {
			return pubsub.Publish(ctx, s.publisher, topics.GameWon, session.GameID, events.GameWon{
				GameID: session.GameID,
				Player: result.Outcome.Player,
				Name:   session.Roster.Name(result.Outcome.Player),
			})
		})
	}
	return session, result, nil
}

// DrawCard draws and applies one Hall Rush card.
func (s *Service) DrawCard(ctx context.Context) (game.CardResult, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return game.CardResult{}, err
	}
	deck, err := s.catalog.Deck(ctx)
	if err != nil {
		return game.CardResult{}, err
	}
	result, err := s.engine.ResolveCardDraw(session.State, session.Roster, deck)
	if err != nil {
		return game.CardResult{}, err
	}

	if err := s.log.Append(ctx, result.Lines...); err != nil {
		return game.CardResult{}, err
	}
	session.State = result.State
	if err := s.store.Save(ctx, session); err != nil {
		return game.CardResult{}, fmt.Errorf("save card draw: %w", err)
	}

	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, topics.CardDrawn, session.GameID, events.CardDrawn{
			GameID: session.GameID,
			Text:   result.Card.Text,
			Action: string(result.Card.Action),
			Lines:  result.Lines,
		})
	})
	return result, nil
}

// CheckCardTimer reports whether a forced card draw is due. When it is, the
// timer is restarted and persisted before returning.
func (s *Service) CheckCardTimer(ctx context.Context) (bool, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if session.LastCardTime.IsZero() {
		return false, nil
	}

	now := s.now().UTC()
	if now.Sub(session.LastCardTime) < s.cardTimer {
		return false, nil
	}
	session.LastCardTime = now
	if err := s.store.Save(ctx, session); err != nil {
		return false, fmt.Errorf("save card timer: %w", err)
	}
	return true, nil
}

// Board returns the saved session and the narration journal.
func (s *Service) Board(ctx context.Context) (BoardView, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		return BoardView{}, err
	}
	lines, err := s.log.ReadAll(ctx)
	if err != nil {
		return BoardView{}, err
	}
	return BoardView{Session: session, Log: lines}, nil
}

// Log returns the narration journal.
func (s *Service) Log(ctx context.Context) ([]string, error) {
	return s.log.ReadAll(ctx)
}

// Reset zeroes the board for the current roster and restarts the journal.
// Without a saved game only the journal is restarted.
func (s *Service) Reset(ctx context.Context) error {
	gameID := ""
	session, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrStateUnavailable):
	case err != nil:
		return err
	default:
		fresh := game.NewSession(session.GameID, session.Roster, s.now().UTC())
		if err := s.store.Save(ctx, fresh); err != nil {
			return fmt.Errorf("save reset: %w", err)
		}
		gameID = fresh.GameID
	}

	if err := s.log.Start(ctx, LineGameReset); err != nil {
		return err
	}
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, topics.GameReset, gameID, events.GameReset{GameID: gameID})
	})
	return nil
}

// publish sends an event. The game state is already saved, so a bus failure
// is logged and not returned.
func (s *Service) publish(ctx context.Context, send func() error) {
	if s.publisher == nil {
		return
	}
	if err := send(); err != nil {
		slog.WarnContext(ctx, "Failed to publish game event", "error", err)
	}
}
