// Package watch reports changes to script files, coalescing bursts of
// filesystem events into one notification per file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period after the last event before a change is
// reported.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watcher closed")

// Watcher watches a fixed set of files. The parent directories are watched
// so that editors replacing a file through a rename are still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	delay  time.Duration
	logger *slog.Logger
	files  map[string]bool

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	changes chan string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger enables debug logging of raw events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New starts watching paths. Every path must name an existing file.
func New(paths []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		delay:   DefaultDelay,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		files:   make(map[string]bool, len(paths)),
		pending: make(map[string]*time.Timer),
		changes: make(chan string, len(paths)+1),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("cannot watch %s: is a directory", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	w.fsw = fsw
	return w, nil
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Run calls onChange with the absolute path of each changed file until ctx
// is cancelled or the watcher is closed. Calls are made from Run's
// goroutine, one at a time.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrClosed
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrClosed
			}
			w.logger.Debug("watch error", "error", err)

		case path := <-w.changes:
			onChange(path)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	w.logger.Debug("fs event", "path", ev.Name, "op", ev.Op.String())
	if !w.files[ev.Name] || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[ev.Name]; ok {
		t.Reset(w.delay)
		return
	}
	path := ev.Name
	w.pending[path] = time.AfterFunc(w.delay, func() { w.fire(path) })
}

// fire reports a change once its debounce timer expires.
func (w *Watcher) fire(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	select {
	case w.changes <- path:
	default:
		// A change for this burst is already queued.
	}
}

// Close stops pending timers and releases the watch.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
