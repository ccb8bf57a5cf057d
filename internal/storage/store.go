package storage

import (
	"context"

	"github.com/nfrund/hallrush/internal/game"
)

// StateStore persists the single game session. Save overwrites the whole
// record; there is no history and no locking.
type StateStore interface {
	// Load returns domain.ErrStateUnavailable if no game has been saved or
	// the saved session does not match its roster.
	Load(ctx context.Context) (*game.Session, error)
	Save(ctx context.Context, session *game.Session) error
}

// EventLog is the append-only narration journal shown on the board.
type EventLog interface {
	Append(ctx context.Context, lines ...string) error
	// Start truncates the journal and writes its first line.
	Start(ctx context.Context, firstLine string) error
	// ReadAll returns every line in write order, or a placeholder line when
	// the journal does not exist yet.
	ReadAll(ctx context.Context) ([]string, error)
}
