package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/datadeck/datadeck/internal/watcher"
)

const debounce = 50 * time.Millisecond

// --- test helpers -----------------------------------------------------------

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// startWatcher runs a watcher on dir whose reload increments the returned
// counter.
func startWatcher(t *testing.T, dir string, reloadErr error) *atomic.Int32 {
	t.Helper()

	var reloads atomic.Int32
	w, err := watcher.New(dir, debounce, func() error {
		reloads.Add(1)
		return reloadErr
	})
	if err != nil {
		t.Fatalf("watcher.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx) //nolint:errcheck
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &reloads
}

// waitForReloads polls until the counter reaches want or the deadline hits.
func waitForReloads(t *testing.T, reloads *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if reloads.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("reloads: got %d, want at least %d", reloads.Load(), want)
}

// --- tests ------------------------------------------------------------------

func TestBurstCollapsesIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, nil)

	// Ten rapid writes inside the debounce window.
	for i := 0; i < 10; i++ {
		writeFile(t, dir, "data.csv", "a\n1\n")
		time.Sleep(2 * time.Millisecond)
	}

	waitForReloads(t, reloads, 1)

	// Let several debounce intervals pass: no further reloads may appear.
	time.Sleep(5 * debounce)
	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads after burst: got %d, want exactly 1", got)
	}
}

func TestSeparateBurstsTriggerSeparateReloads(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, nil)

	writeFile(t, dir, "data.csv", "a\n1\n")
	waitForReloads(t, reloads, 1)

	time.Sleep(3 * debounce)
	writeFile(t, dir, "data.csv", "a\n2\n")
	waitForReloads(t, reloads, 2)
}

func TestDeleteTriggersReload(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.csv", "a\n1\n")

	reloads := startWatcher(t, dir, nil)
	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	waitForReloads(t, reloads, 1)
}

func TestUnrecognizedExtensionIgnored(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, nil)

	writeFile(t, dir, "notes.txt", "irrelevant")
	time.Sleep(5 * debounce)

	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads for .txt change: got %d, want 0", got)
	}
}

func TestSubdirectoryChangesIgnored(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	reloads := startWatcher(t, dir, nil)

	// A qualifying name, but not a direct child of the watched directory.
	// fsnotify only watches dir itself (non-recursive), and the filter also
	// rejects it by parent.
	writeFile(t, sub, "data.csv", "a\n1\n")
	time.Sleep(5 * debounce)

	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads for subdirectory change: got %d, want 0", got)
	}
}

func TestReloadFailureKeepsWatcherRunning(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, errors.New("boom"))

	writeFile(t, dir, "data.csv", "a\n1\n")
	waitForReloads(t, reloads, 1)

	time.Sleep(3 * debounce)
	writeFile(t, dir, "data.csv", "a\n2\n")
	waitForReloads(t, reloads, 2)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := watcher.New(filepath.Join(t.TempDir(), "nope"), debounce, func() error { return nil })
	if err == nil {
		t.Fatal("watcher.New on missing dir: expected error, got nil")
	}
}
