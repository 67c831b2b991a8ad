package jsonfile

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 50 * time.Millisecond

// Watcher reports changes to a slot file made by anything, including other
// processes. Bursts of filesystem events are collapsed into one notification.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     zerolog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts watching the directory holding path. The directory is
// created if it doesn't exist; the file itself may be absent.
func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// The directory is watched rather than the file: rename-based writes
	// replace the inode, which drops a watch placed on the file itself.
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		log:     log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Changes delivers one value per debounced burst of changes. Notifications
// that arrive while one is already pending are merged into it.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching. The Changes channel is closed once the watcher exits.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("slot watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case w.changes <- struct{}{}:
	default:
		// a notification is already pending
	}
}
