// Package watcher reloads a configuration file when it changes on disk.
//
// The watcher observes the file's directory with fsnotify, so editors that
// save by renaming a temporary file are handled. Bursts of events are
// debounced into one reload. Reloaded configurations are delivered on a
// channel; the receiver decides when to apply them, typically on its own
// UI loop.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/config"
)

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Update is the result of one reload.
type Update struct {
	// Config is the reloaded configuration, valid when Err is nil.
	Config config.Config
	// Err is the load or parse error, if any.
	Err error
	// Time is when the reload happened.
	Time time.Time
}

// Watcher reloads one configuration file on change.
type Watcher struct {
	mu sync.Mutex

	path     string
	fsw      *fsnotify.Watcher
	updates  chan Update
	debounce time.Duration
	timer    *time.Timer
	log      zerolog.Logger

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// New starts watching the configuration file at path.
// The file need not exist yet, but its directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := config.FormatOf(absPath); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		fsw:      fsw,
		updates:  make(chan Update, 1),
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Updates returns the channel reloads are delivered on. Only the latest
// undelivered update is kept. The channel is closed by Close.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.closedWg.Wait()
	close(w.updates)
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("config watch error")
		}
	}
}

// schedule arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload loads the file and publishes the result.
func (w *Watcher) reload() {
	cfg, err := config.Load(w.path)
	u := Update{Config: cfg, Err: err, Time: time.Now()}

	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
	} else {
		w.log.Debug().Str("path", w.path).Msg("config reloaded")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	// Replace a pending update rather than block the timer goroutine.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}
