package signals

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalContextCancelOnSignal(t *testing.T) {
	ctx, cancel := SetupSignalContext(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("failed to send SIGINT: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled after SIGINT")
	}
}

func TestSetupSignalContextParentCancel(t *testing.T) {
	parent, parentCancel := context.WithCancel(context.Background())
	ctx, cancel := SetupSignalContext(parent)
	defer cancel()

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled when parent canceled")
	}
}
