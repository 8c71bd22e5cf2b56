// Package watch reloads the dictionary when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor or spreadsheet
// program produces for a single save.
const DefaultDebounce = 250 * time.Millisecond

// Reloader loads a dictionary file and makes it active.
type Reloader interface {
	LoadDictionary(path string) error
}

// Watcher follows one dictionary file.
type Watcher struct {
	path   string
	target Reloader

	Debounce time.Duration
	Logger   *slog.Logger

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)

	ready chan struct{}
}

// New creates a watcher for path that reloads target.
func New(path string, target Reloader) *Watcher {
	return &Watcher{
		path:     path,
		target:   target,
		Debounce: DefaultDebounce,
		Logger:   slog.Default(),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. A failed reload is logged and the
// previous dictionary stays active; watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory: saves often replace the file rather than write it
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	close(w.ready)

	baseName := filepath.Base(w.path)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("dictionary watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	err := w.target.LoadDictionary(w.path)
	if err != nil {
		w.Logger.Warn("dictionary reload failed", "path", w.path, "error", err)
	} else {
		w.Logger.Info("dictionary reloaded", "path", w.path)
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}
