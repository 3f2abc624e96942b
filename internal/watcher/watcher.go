// Package watcher is the external event source that triggers organize
// passes: it observes the engine's watched directories with fsnotify
// and asks the engine to organize a directory after changes settle.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tidy-go/internal/engine"
)

// DefaultDebounce is the quiet period applied when no debounce is
// configured. Bursty writers (downloads, editors) produce many events
// per file; one pass after the burst is enough.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes the watched directories and triggers a directory
// organize pass on create and rename events.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	eng      *engine.Engine
	logger   engine.Logger
	debounce time.Duration

	pending map[string]*time.Timer // dir -> debounce timer
}

// New creates a Watcher over the engine's current watched directories
// and starts its event loop. A non-positive debounce uses
// DefaultDebounce.
func New(eng *engine.Engine, logger engine.Logger, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		done:     make(chan struct{}),
		eng:      eng,
		logger:   logger,
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}

	for _, dir := range eng.WatchedDirectories() {
		if err := fw.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "path", dir, "error", err)
			continue
		}
		logger.Info("watching directory", "path", dir)
	}

	go w.loop()
	return w, nil
}

// Stop shuts down the event loop and cancels pending triggers.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return // already stopped
	default:
	}
	close(w.done)
	w.watcher.Close()

	for _, t := range w.pending {
		t.Stop()
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(dirOf(event.Name))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a directory. The
// pass fires once the directory has been quiet for the debounce period.
func (w *Watcher) schedule(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	if t, ok := w.pending[dir]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[dir] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, dir)
		w.mu.Unlock()

		w.logger.Debug("change settled, organizing", "path", dir)
		w.eng.OrganizeDirectory(context.Background(), dir)
	})
}

// dirOf returns the directory a change belongs to. Events carry the
// changed entry's path; passes run over its parent.
func dirOf(path string) string {
	return filepath.Dir(path)
}
