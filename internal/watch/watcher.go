package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// retryDelay is how long a failed watch waits before re-adding itself.
const retryDelay = 250 * time.Millisecond

// Watcher monitors one directory at a time and feeds file activity
// through a Debouncer, so consumers see change batches instead of raw
// events. Retargeting replaces the previous watch. When the watched
// directory disappears or the watch errors out, the watch is torn down
// and Resets signals that listings must be re-synced from disk.
type Watcher struct {
	fsw *fsnotify.Watcher
	deb *Debouncer

	mu  sync.Mutex
	dir string

	Resets chan struct{}
	Errors chan error
	done   chan struct{}
}

// NewWatcher creates a watcher with no target, batching changes on the
// given quiet window. Call Watch to aim it and Start to begin delivering
// events.
func NewWatcher(window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:    fsw,
		deb:    NewDebouncer(window),
		Resets: make(chan struct{}, 1),
		Errors: make(chan error, 10),
		done:   make(chan struct{}),
	}, nil
}

// Batches delivers the debounced change batches: sorted, deduplicated
// base filenames.
func (w *Watcher) Batches() <-chan []string {
	return w.deb.Batches
}

// Refreshes delivers the slower listing-window signal.
func (w *Watcher) Refreshes() <-chan struct{} {
	return w.deb.Refresh
}

// Watch retargets the watcher at dir, replacing any previous target.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" {
		_ = w.fsw.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	return nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.loop()
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	w.deb.Close()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		}
	}
}

// handleEvent forwards file activity inside the watched directory and
// catches the directory itself going away.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.mu.Lock()
	dir := w.dir
	w.mu.Unlock()
	if dir == "" {
		return
	}

	name := filepath.Clean(event.Name)

	if name == dir && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		// The watched directory vanished; everything under it is gone.
		w.mu.Lock()
		w.dir = ""
		w.mu.Unlock()
		w.signalReset()
		return
	}

	if filepath.Dir(name) != dir {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.deb.Hit(filepath.Base(name))
}

// handleError reports the error, tears the watch down, and retries the
// same target after a short delay. Either way Resets fires so the owner
// re-syncs from disk.
func (w *Watcher) handleError(err error) {
	select {
	case w.Errors <- err:
	default:
		// Error channel full, drop
	}

	w.mu.Lock()
	dir := w.dir
	w.dir = ""
	w.mu.Unlock()
	if dir == "" {
		return
	}
	_ = w.fsw.Remove(dir)

	time.AfterFunc(retryDelay, func() {
		w.mu.Lock()
		if w.dir == "" {
			if addErr := w.fsw.Add(dir); addErr == nil {
				w.dir = dir
			}
		}
		w.mu.Unlock()
		w.signalReset()
	})
}

func (w *Watcher) signalReset() {
	select {
	case w.Resets <- struct{}{}:
	default:
	}
}
