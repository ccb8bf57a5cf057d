package hallrush

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfrund/hallrush/internal/modules/hallrush/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataWatcher_PublishesForWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	bus := &recordingPublisher{}

	w := NewDataWatcher(dir, []string{"game_state.json"}, bus)
	w.debounce = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game_state.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game_state.json"), []byte(`{"turn":1}`), 0644))

	require.Eventually(t, func() bool {
		return len(bus.topics()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// Give a straggling event time to arrive before counting.
	time.Sleep(100 * time.Millisecond)
	require.Len(t, bus.topics(), 1, "a burst of writes is reported once")

	msg := bus.last()
	assert.Equal(t, topics.BoardChanged.Name(), msg.Topic)
	payload, err := topics.BoardChanged.Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, "game_state.json", payload.Path)
}

func TestDataWatcher_MissingDirectory(t *testing.T) {
	w := NewDataWatcher(filepath.Join(t.TempDir(), "missing"), nil, &recordingPublisher{})
	assert.Error(t, w.Start(context.Background()))
}
