package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before triggering a reload. Editors write task files in bursts.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a task directory and reloads it after changes settle.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce *debouncer
	logger   *slog.Logger
}

// NewWatcher builds a watcher over a task directory.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:      dir,
		watcher:  fw,
		debounce: newDebouncer(debounce),
		logger:   slog.Default().With("component", "taskwatcher"),
	}, nil
}

// Watch blocks until the context is canceled, invoking onReload with the
// freshly loaded task list after each settled change. A load failure keeps
// the previous task set; watching continues.
func (w *Watcher) Watch(ctx context.Context, onReload func([]Task)) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch task directory %q: %w", w.dir, err)
	}
	defer w.watcher.Close()
	defer w.debounce.stop()

	w.logger.Info("task watcher started", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("task watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("task file event", "path", event.Name, "op", event.Op.String())
			w.debounce.trigger(func() {
				list, err := LoadDir(w.dir)
				if err != nil {
					w.logger.Error("task reload failed", "error", err)
					return
				}
				w.logger.Info("tasks reloaded", "count", len(list))
				onReload(list)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("task watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
	default:
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// debouncer collapses bursts of events into one callback after a quiet
// interval.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
