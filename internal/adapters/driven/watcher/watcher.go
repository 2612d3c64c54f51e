// Package watcher provides file system watching for the queries directory,
// used by "dunesync watch" to push query files as they are saved.
package watcher

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// DefaultDebounce is the quiet period before a batch is emitted.
const DefaultDebounce = 500 * time.Millisecond

// Ensure QueryWatcher implements the interface.
var _ driven.ChangeWatcher = (*QueryWatcher)(nil)

// QueryWatcher watches a directory for created or modified query files and
// emits them in debounced batches. Editors often write a file several times
// per save; all of those collapse into one batch entry.
type QueryWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration

	changes chan []string
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// New starts watching dir. A non-positive debounce uses DefaultDebounce.
func New(dir string, debounce time.Duration) (*QueryWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch queries directory %s: %w", dir, err)
	}

	w := &QueryWatcher{
		watcher:  fsw,
		dir:      dir,
		debounce: debounce,
		changes:  make(chan []string, 8),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Changes returns the channel of debounced batches of query file paths.
// This channel is closed when the watcher is closed.
func (w *QueryWatcher) Changes() <-chan []string {
	return w.changes
}

// Errors returns the channel of watch errors.
// This channel is closed when the watcher is closed.
func (w *QueryWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching and blocks until the event loop has exited.
// Pending changes that have not been flushed are dropped.
func (w *QueryWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		if err := w.watcher.Close(); err != nil {
			w.closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
		w.wg.Wait()
		close(w.changes)
		close(w.errors)
	})
	return w.closeErr
}

func (w *QueryWatcher) run() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path, ok := w.accept(event)
			if !ok {
				continue
			}
			logger.Debug("Watch event %s on %s", event.Op, path)
			pending[path] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})

			select {
			case w.changes <- batch:
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// accept keeps create and write events on query files.
// Removals and renames away from a name leave nothing to push.
func (w *QueryWatcher) accept(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if filepath.Dir(event.Name) != filepath.Clean(w.dir) {
		return "", false
	}
	if _, ok := domain.ExtractQueryID(filepath.Base(event.Name)); !ok {
		return "", false
	}
	return event.Name, true
}
