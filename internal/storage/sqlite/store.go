// Package sqlite provides a SQLite-backed game state store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS game_session (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	game_id    TEXT    NOT NULL,
	body       TEXT    NOT NULL,
	updated_at INTEGER NOT NULL
)`

// StateStore persists the session as a single JSON row.
type StateStore struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database.
func Open(path string) (*StateStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &StateStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *StateStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Shutdown closes the handle when the owning injector shuts down.
func (s *StateStore) Shutdown() error {
	return s.Close()
}

// Load returns the saved session.
func (s *StateStore) Load(ctx context.Context) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var body string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT body FROM game_session WHERE id = 1`).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateUnavailable
		}
		return nil, fmt.Errorf("load game session: %w", err)
	}

	var session game.Session
	if err := json.Unmarshal([]byte(body), &session); err != nil {
		return nil, fmt.Errorf("decode game session: %w", err)
	}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStateUnavailable, err)
	}
	return &session, nil
}

// Save replaces the saved session.
func (s *StateStore) Save(ctx context.Context, session *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode game session: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO game_session (id, game_id, body, updated_at)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   game_id = excluded.game_id,
		   body = excluded.body,
		   updated_at = excluded.updated_at`,
		session.GameID,
		string(body),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save game session: %w", err)
	}
	return nil
}
