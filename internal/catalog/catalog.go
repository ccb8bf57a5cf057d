// Package catalog loads the static board configuration: the special tile
// table and the Hall Rush card deck. Both are read fresh on every call so
// edits on disk take effect on the next roll or draw.
package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/spf13/afero"
)

const (
	// TilesFile is the tile effect table, keyed by tile number.
	TilesFile = "special_tiles.json"
	// CardsFile is the list of drawable cards.
	CardsFile = "hall_rush_cards.json"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

// validatorInstance caches struct information across loads.
var validatorInstance = validator.New()

// deckFile wraps the card list so the whole deck validates in one call.
type deckFile struct {
	Cards []game.Card `validate:"min=1,dive"`
}

// Catalog reads configuration files from a directory on an afero filesystem.
type Catalog struct {
	fs  afero.Fs
	dir string
}

// New creates a catalog rooted at dir.
func New(fs afero.Fs, dir string) *Catalog {
	return &Catalog{fs: fs, dir: dir}
}

// Path returns the full path of a configuration file.
func (c *Catalog) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// Tiles loads the tile effect table. Keys that are not tile numbers can never
// be landed on, so they are skipped with a warning.
func (c *Catalog) Tiles(ctx context.Context) (game.TileTable, error) {
	var raw map[string]game.TileEffect
	if err := c.readJSON(TilesFile, &raw); err != nil {
		return nil, err
	}

	tiles := make(game.TileTable, len(raw))
	for key, effect := range raw {
		tile, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			slog.WarnContext(ctx, "Ignoring special tile with a non-numeric key", "key", key, "file", TilesFile)
			continue
		}
		if err := validatorInstance.Struct(effect); err != nil {
			return nil, fmt.Errorf("%w: tile %d: %v", domain.ErrConfigUnavailable, tile, err)
		}
		tiles[tile] = effect
	}
	return tiles, nil
}

// Deck loads and validates the card deck. An empty deck is an error because
// nothing could be drawn from it.
func (c *Catalog) Deck(ctx context.Context) (game.Deck, error) {
	var cards []game.Card
	if err := c.readJSON(CardsFile, &cards); err != nil {
		return nil, err
	}
	if err := validatorInstance.Struct(deckFile{Cards: cards}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigUnavailable, CardsFile, err)
	}
	return game.Deck(cards), nil
}

// Check loads both files and reports the first problem found.
func (c *Catalog) Check(ctx context.Context) (int, int, error) {
	tiles, err := c.Tiles(ctx)
	if err != nil {
		return 0, 0, err
	}
	deck, err := c.Deck(ctx)
	if err != nil {
		return len(tiles), 0, err
	}
	return len(tiles), len(deck), nil
}

func (c *Catalog) readJSON(name string, target any) error {
	data, err := afero.ReadFile(c.fs, c.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in %s", domain.ErrConfigUnavailable, name, c.dir)
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrConfigUnavailable, name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrConfigUnavailable, name, err)
	}
	return nil
}

// ExtractDefaults writes the embedded default tile table and deck into the
// catalog directory. Existing files are kept unless force is set. It returns
// the files that were written.
func (c *Catalog) ExtractDefaults(force bool) ([]string, error) {
	if err := c.fs.MkdirAll(c.dir, 0755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	var written []string
	for _, name := range []string{TilesFile, CardsFile} {
		target := c.Path(name)
		exists, err := afero.Exists(c.fs, target)
		if err != nil {
			return written, fmt.Errorf("stat %s: %w", target, err)
		}
		if exists && !force {
			slog.Debug("Keeping existing configuration file", "path", target)
			continue
		}

		data, err := defaultsFS.ReadFile(path.Join("defaults", name))
		if err != nil {
			return written, fmt.Errorf("read embedded %s: %w", name, err)
		}
		if err := afero.WriteFile(c.fs, target, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
