package event

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"leetui/internal/telemetry"
)

// Watcher pushes a WorkspaceChanged after a burst of file changes in the
// watched directory settles.
type Watcher struct {
	mu       sync.Mutex
	fw       *fsnotify.Watcher
	dir      string
	queue    *Queue
	debounce time.Duration
	logger   *telemetry.Logger
}

func NewWatcher(q *Queue, debounce time.Duration, logger *telemetry.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{fw: fw, queue: q, debounce: debounce, logger: logger}, nil
}

// Watch replaces the watched directory.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fw.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	return nil
}

func (w *Watcher) current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Run forwards debounced changes until ctx ends or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("workspace.watch_error", map[string]any{"error": err.Error()})
		case <-fire:
			fire = nil
			if dir := w.current(); dir != "" {
				w.queue.Push(WorkspaceChanged{Dir: dir})
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
