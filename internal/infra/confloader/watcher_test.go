package confloader

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/respcli/internal/telemetry/logger"
)

func TestNewWatcher(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.watcher == nil {
		t.Error("NewWatcher() watcher is nil")
	}
	if w.logger == nil {
		t.Error("NewWatcher() logger is nil")
	}
}

func TestNewWatcher_WithLogger(t *testing.T) {
	l, _ := logger.New(logger.Config{Level: "debug"})

	w, err := NewWatcher(WithWatcherLogger(l))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if w.logger != l {
		t.Error("WithWatcherLogger() option not applied")
	}
}

func TestWatcher_Watch_NonexistentDir(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch("/nonexistent/dir/cli.yaml"); err == nil {
		t.Error("Watch() should fail for a missing directory")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.StartAsync()

	if err := w.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestWatcher_FileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.yaml")
	other := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	var mu sync.Mutex
	var changed []string
	notified := make(chan struct{}, 16)
	w.OnChange(func(p string) {
		mu.Lock()
		changed = append(changed, p)
		mu.Unlock()
		notified <- struct{}{}
	})
	w.StartAsync()

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(other, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, p := range changed {
		if p != filepath.Clean(path) {
			t.Errorf("callback received %q, want only %q", p, path)
		}
	}
}
