// Package fswatch adapts fsnotify to the vault watcher port.
//
// fsnotify watches single directories, so the whole tree is registered up
// front and folders created later are added as their events arrive. Raw
// operations are translated into add, addDir, change, unlink and unlinkDir.
package fswatch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mdvault/internal/domain"
	"mdvault/internal/logger"
	"mdvault/internal/ports"
)

// DefaultCoalesce is the window in which identical events are reported once
const DefaultCoalesce = 50 * time.Millisecond

// Factory starts fsnotify watchers
type Factory struct {
	log      *logger.Logger
	coalesce time.Duration
}

var _ ports.WatcherFactory = (*Factory)(nil)

// NewFactory creates a watcher factory. A non-positive coalesce window
// selects DefaultCoalesce.
func NewFactory(log *logger.Logger, coalesce time.Duration) *Factory {
	if log == nil {
		log = logger.Discard()
	}
	if coalesce <= 0 {
		coalesce = DefaultCoalesce
	}
	return &Factory{log: log, coalesce: coalesce}
}

// Watch starts a recursive watcher over root
func (f *Factory) Watch(root string) (ports.Watcher, error) {
	return New(root, f.coalesce, f.log)
}

type eventKey struct {
	kind domain.EventKind
	path string
}

// Watcher is a recursive vault watcher backed by fsnotify
type Watcher struct {
	fsw    *fsnotify.Watcher
	root   string
	log    *logger.Logger
	window time.Duration

	events chan domain.WatchEvent
	errs   chan error
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once

	// owned by the loop goroutine
	dirs   map[string]struct{}
	recent map[eventKey]time.Time
}

var _ ports.Watcher = (*Watcher)(nil)

// New registers root and every non-hidden folder below it.
// No events are produced for entries that already exist.
func New(root string, window time.Duration, log *logger.Logger) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to watch vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to watch vault: not a directory: %s", root)
	}

	if log == nil {
		log = logger.Discard()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		root:   filepath.Clean(root),
		log:    log,
		window: window,
		events: make(chan domain.WatchEvent),
		errs:   make(chan error),
		done:   make(chan struct{}),
		dirs:   make(map[string]struct{}),
		recent: make(map[eventKey]time.Time),
	}

	if err := w.addTree(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add directories to watcher: %w", err)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the translated event stream
func (w *Watcher) Events() <-chan domain.WatchEvent { return w.events }

// Errors returns errors reported by the backend
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher and closes both channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errs)
	})
	return err
}

// addTree registers dir and its non-hidden subfolders, skipping hidden ones
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // vanished or unreadable below the root
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && domain.IsHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.dirs[path] = struct{}{}
		return nil
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			for _, ev := range w.translate(event) {
				if !w.emit(ev) {
					return
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.done:
				return
			}
		}
	}
}

func (w *Watcher) emit(ev domain.WatchEvent) bool {
	if w.duplicate(ev) {
		return true
	}
	select {
	case w.events <- ev:
		return true
	case <-w.done:
		return false
	}
}

// duplicate reports whether the same event was emitted within the window
func (w *Watcher) duplicate(ev domain.WatchEvent) bool {
	now := time.Now()
	key := eventKey{kind: ev.Kind, path: ev.Path}
	last, seen := w.recent[key]
	w.recent[key] = now

	if len(w.recent) > 256 {
		for k, t := range w.recent {
			if now.Sub(t) > w.window {
				delete(w.recent, k)
			}
		}
	}
	return seen && now.Sub(last) <= w.window
}

func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if domain.IsHidden(part) {
			return true
		}
	}
	return false
}

// translate maps one fsnotify event onto zero or more vault events
func (w *Watcher) translate(event fsnotify.Event) []domain.WatchEvent {
	path := filepath.Clean(event.Name)
	if w.hidden(path) {
		return nil
	}

	var out []domain.WatchEvent
	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Lstat(path)
		if err != nil {
			return nil // already gone again
		}
		if info.IsDir() {
			if err := w.addTree(path); err != nil {
				w.log.WatcherFailed(path, err)
			}
			out = append(out, domain.WatchEvent{Kind: domain.EventAddDir, Path: path})
		} else {
			out = append(out, domain.WatchEvent{Kind: domain.EventAdd, Path: path})
		}

	case event.Has(fsnotify.Write):
		if _, isDir := w.dirs[path]; !isDir {
			out = append(out, domain.WatchEvent{Kind: domain.EventChange, Path: path})
		}

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		_, isDir := w.dirs[path]
		if !isDir {
			// a removed folder is reported by its parent and by itself
			_, isDir = w.recent[eventKey{kind: domain.EventUnlinkDir, path: path}]
		}
		if isDir {
			w.forgetTree(path)
			out = append(out, domain.WatchEvent{Kind: domain.EventUnlinkDir, Path: path})
		} else {
			out = append(out, domain.WatchEvent{Kind: domain.EventUnlink, Path: path})
		}
	}
	// Chmod carries no content change
	return out
}

// forgetTree drops dir and its descendants from the known folders.
// fsnotify removes the watches itself once the folders are gone.
func (w *Watcher) forgetTree(dir string) {
	prefix := dir + string(filepath.Separator)
	for d := range w.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(w.dirs, d)
			// a renamed folder keeps its watch on some platforms
			_ = w.fsw.Remove(d)
		}
	}
}
