package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/aarnav1729/qap/pkg/lifecycle"
)

func TestReadyAfterStartup(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Bool
	lc.OnStartup(func() {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
	})

	if lc.Ready() {
		t.Error("Ready() = true before startup completes")
	}

	lc.WaitForStartup()

	if !ran.Load() {
		t.Error("startup hook did not run")
	}
	if !lc.Ready() {
		t.Error("Ready() = false after startup completes")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !cleaned.Load() {
		t.Error("shutdown hook did not run")
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	block := make(chan struct{})
	lc.OnShutdown(func() {
		<-block
	})

	err := lc.Shutdown(20 * time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	close(block)
}
