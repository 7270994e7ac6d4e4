// Package watch reports changes to a single file using fsnotify.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/comptree/pkg/log"
)

// Watcher calls onChange after the watched file is written, created or
// replaced. Bursts of events within the debounce window collapse into one
// call.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
	logger   log.Logger

	ready chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for path.
func New(path string, debounce time.Duration, onChange func(), logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watch is established.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the file's directory until ctx is canceled. Watching the
// directory keeps the watch alive across editors that save by rename.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	close(w.ready)
	w.logger.Debug("watching manifest", log.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("manifest changed",
				log.String("path", w.path),
				log.Stringer("op", event.Op),
			)
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
