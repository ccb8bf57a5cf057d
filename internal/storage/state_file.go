package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
)

// FileStateStore keeps the session as a single JSON document.
type FileStateStore struct {
	files *AferoStore
	path  string
}

// NewFileStateStore creates a state store writing to path.
func NewFileStateStore(files *AferoStore, path string) *FileStateStore {
	return &FileStateStore{files: files, path: path}
}

// Load reads and decodes the saved session.
func (s *FileStateStore) Load(ctx context.Context) (*game.Session, error) {
	f, err := s.files.Get(ctx, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrStateUnavailable
		}
		return nil, fmt.Errorf("open state file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var session game.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStateUnavailable, s.path, err)
	}
	return &session, nil
}

// Save overwrites the state file with the session.
func (s *FileStateStore) Save(ctx context.Context, session *game.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if _, err := s.files.Save(ctx, s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
