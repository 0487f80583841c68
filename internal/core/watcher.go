package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses editor save bursts into one reload.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watch reloads the service whenever one of the fixture files in dir is
// written, created or renamed into place. Events within debounce of each
// other trigger a single reload. Watch blocks until ctx is cancelled.
func (s *Service) Watch(ctx context.Context, dir string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Info("fixture watcher started", "dir", dir, "debounce", debounce.String())

	files := []string{OrdersFile, ShipmentsFile, ChecklistFile}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("fixture watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !slices.Contains(files, filepath.Base(event.Name)) {
				continue
			}
			slog.Debug("fixture changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			if err := s.Reload(ctx); err != nil {
				slog.Error("fixture reload failed", "dir", dir, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("fixture watcher error", "error", err)
		}
	}
}
