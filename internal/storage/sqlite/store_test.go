package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfrund/hallrush/internal/domain"
	"github.com/nfrund/hallrush/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *StateStore {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStateStore_LoadWithoutGame(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStateUnavailable)
}

func TestStateStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := game.NewSession("g-1", game.NewRoster([]string{"A", "B"}), time.Now().UTC())
	require.NoError(t, store.Save(ctx, first))

	second := game.NewSession("g-2", game.NewRoster([]string{"A", "B", "C"}), time.Now().UTC())
	second.Positions[2] = 11
	second.Turn = 2
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g-2", loaded.GameID)
	assert.Equal(t, []int{0, 0, 11}, loaded.Positions)
	assert.Equal(t, 2, loaded.Turn)
	assert.Len(t, loaded.Roster, 3)
}

func TestStateStore_LoadRejectsMismatchedRoster(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	session := game.NewSession("g-bad", game.NewRoster([]string{"A", "B"}), time.Now().UTC())
	session.Positions = append(session.Positions, 0)
	session.Skips = append(session.Skips, 0)
	require.NoError(t, store.Save(ctx, session))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateUnavailable)
	assert.ErrorIs(t, err, game.ErrInvalidState)
}

func TestStateStore_FileBacked(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hallrush.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, game.NewSession("g-file", game.NewRoster([]string{"A"}), time.Now().UTC())))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g-file", loaded.GameID)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
