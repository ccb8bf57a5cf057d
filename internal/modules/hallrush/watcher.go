package hallrush

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nfrund/hallrush/internal/modules/hallrush/events"
	"github.com/nfrund/hallrush/internal/modules/hallrush/topics"
	"github.com/nfrund/hallrush/internal/pubsub"
)

// DefaultWatchDebounce groups the burst of events a single save produces.
const DefaultWatchDebounce = 250 * time.Millisecond

// DataWatcher publishes BoardChanged when game files in the data directory
// are changed, for example by the operator CLI.
type DataWatcher struct {
	dir       string
	files     map[string]bool
	publisher pubsub.Publisher
	debounce  time.Duration
}

// NewDataWatcher watches the named files inside dir.
func NewDataWatcher(dir string, files []string, publisher pubsub.Publisher) *DataWatcher {
	watched := make(map[string]bool, len(files))
	for _, name := range files {
		watched[name] = true
	}
	return &DataWatcher{
		dir:       dir,
		files:     watched,
		publisher: publisher,
		debounce:  DefaultWatchDebounce,
	}
}

// Start begins watching. It returns once the directory is registered; events
// are handled on a background goroutine until ctx is canceled.
func (w *DataWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	go w.watchFiles(ctx, watcher)
	slog.Info("Watching data directory for changes", "directory", w.dir)
	return nil
}

func (w *DataWatcher) watchFiles(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		watcher.Close()
		slog.Info("Data directory watcher stopped")
	}()

	pending := make(map[string]fsnotify.Op)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] |= event.Op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			for path, op := range pending {
				w.publish(ctx, path, op)
			}
			clear(pending)
			timer, fire = nil, nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Data directory watcher error", "error", err)
		}
	}
}

func (w *DataWatcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Base(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *DataWatcher) publish(ctx context.Context, path string, op fsnotify.Op) {
	slog.Debug("Game data file changed", "path", path, "op", op.String())
	err := pubsub.Publish(ctx, w.publisher, topics.BoardChanged, "", events.BoardChanged{
		Path: filepath.Base(path),
		Op:   op.String(),
	})
	if err != nil {
		slog.Warn("Failed to publish board change", "path", path, "error", err)
	}
}
