package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/datadeck/datadeck/internal/dataset"
)

// qualifyingOps are the fsnotify operations that can change the dataset set.
const qualifyingOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher debounces directory change events into reload calls.
type Watcher struct {
	dir      string
	debounce time.Duration
	reload   func() error
	fsw      *fsnotify.Watcher
}

// New creates a Watcher on dir that calls reload after each debounced burst
// of changes.
func New(dir string, debounce time.Duration, reload func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close() //nolint:errcheck
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      filepath.Clean(dir),
		debounce: debounce,
		reload:   reload,
		fsw:      fsw,
	}, nil
}

// Run consumes filesystem events until ctx is cancelled. It owns the
// debounce timer and executes reloads inline, so cancellation never leaves
// a reload running unattended.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close() //nolint:errcheck

	slog.Info("watcher: watching data directory", "dir", w.dir, "debounce", w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.qualifies(ev) {
				continue
			}
			slog.Debug("watcher: change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			slog.Info("watcher: quiet period elapsed, reloading", "dir", w.dir)
			if err := w.reload(); err != nil {
				slog.Error("watcher: reload failed, keeping previous datasets", "err", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher: filesystem watch error", "err", err)
		}
	}
}

// qualifies filters events down to changes that can affect the dataset set:
// recognized extensions directly inside the watched directory. Removed
// targets cannot be stat'ed, so the directory check is best-effort.
func (w *Watcher) qualifies(ev fsnotify.Event) bool {
	if ev.Op&qualifyingOps == 0 {
		return false
	}
	if filepath.Dir(filepath.Clean(ev.Name)) != w.dir {
		return false
	}
	if !dataset.Recognized(ev.Name) {
		return false
	}
	if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
		return false
	}
	return true
}
