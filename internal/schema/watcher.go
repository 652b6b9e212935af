package schema

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the schema root and the directories containing validation
// targets, triggering a rerun of the batch when a relevant file changes.
type Watcher struct {
	dirs   []string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher over the given directories.
func NewWatcher(logger *slog.Logger, dirs ...string) *Watcher {
	return &Watcher{
		dirs:       dirs,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring for changes. It calls the provided callback with
// the changed path whenever a JSON or schema file is written or created.
// It blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if aErr := w.addRecursive(watcher, dir); aErr != nil {
			return aErr
		}
	}

	w.logger.Info("Watching for changes", "dirs", w.dirs)
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case wErr := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", wErr)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(watcher, event); path != "" {
				if timer != nil {
					timer.Stop()
				}
				// Each timer captures its own path: a stopped timer's callback
				// may already be running and must not observe a later event.
				timer = time.AfterFunc(debounceDuration, func() {
					callback(path)
				})
			}
		}
	}
}

// handleEvent processes a single fsnotify event. New directories are added to
// the watch set; relevant file changes return the changed path.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if aErr := w.addRecursive(watcher, event.Name); aErr != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", aErr)
			}
			return ""
		}
	}

	if filepath.Ext(event.Name) == ".json" {
		return event.Name
	}
	return ""
}

// addRecursive adds the given path and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
