// Package watch re-runs a callback when a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/schmitthub/fcgen/internal/logger"
)

// DefaultDebounce batches the event bursts editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// File watches path and invokes fn after each (debounced) modification.
// Callback errors are logged, not fatal: a broken intermediate save
// shouldn't kill the watch loop. Returns when ctx is canceled.
//
// The parent directory is watched rather than the file itself, because
// editors that save via rename replace the inode and would otherwise
// silently detach the watch.
func File(ctx context.Context, path string, debounce time.Duration, fn func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Idle until the first relevant event arms it.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger.Info().Str("path", abs).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("source changed")
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")

		case <-timer.C:
			if err := fn(); err != nil {
				logger.Error().Err(err).Msg("regeneration failed")
			}
		}
	}
}
