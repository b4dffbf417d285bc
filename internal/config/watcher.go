package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoConfigPath is returned when there is no config file to watch.
var ErrNoConfigPath = errors.New("no config file path")

// Watcher reloads configuration when its file changes and delivers the
// result on Updates. Failed reloads are reported on Errors and the previous
// configuration stays in effect.
//
// The containing directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen.
type Watcher struct {
	mu sync.Mutex

	opts     Options
	path     string
	debounce time.Duration

	watcher *fsnotify.Watcher
	updates chan *Config
	errors  chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the config file named by opts.Path (or
// DefaultPath). Every reload uses opts, so environment variables and
// overrides keep their precedence over the file. The directory must exist;
// the file itself may be created later.
func NewWatcher(opts Options, wopts ...WatcherOption) (*Watcher, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return nil, ErrNoConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	opts.Path = absPath

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		opts:     opts,
		path:     absPath,
		debounce: DefaultDebounce,
		watcher:  fsw,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range wopts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Updates returns the channel of reloaded configurations. Only the most
// recent unread configuration is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors returns the channel of reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.updates)
	close(w.errors)

	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			timer.Stop()
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			sendLatest(w.errors, err)
		}
	}
}

// relevant reports whether ev touches the config file with new content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.opts)
	if err != nil {
		sendLatest(w.errors, err)
		return
	}
	sendLatest(w.updates, cfg)
}

// sendLatest delivers v on a one-slot channel, replacing any unread value.
// Only processLoop sends, so the retry cannot block.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
