package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/fcgen/internal/logger"
)

func init() {
	logger.Log = zerolog.Nop()
}

func TestFileInvokesCallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.rs")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, func() error {
			calls.Add(1)
			return nil
		})
	}()

	// Give the watcher time to arm before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 5*time.Second, 20*time.Millisecond, "callback not invoked after write")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFileIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.rs")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go func() {
		_ = File(ctx, path, 20*time.Millisecond, func() error {
			calls.Add(1)
			return nil
		})
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.rs"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)

	assert.Zero(t, calls.Load(), "sibling file write should not trigger the callback")
}

func TestFileCallbackErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.rs")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, func() error {
			calls.Add(1)
			return assert.AnError
		})
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)

	// Still alive after the error.
	select {
	case err := <-done:
		t.Fatalf("watch loop exited unexpectedly: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}
