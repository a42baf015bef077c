// Package watch reloads a source after the files behind it stop changing.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/tabfilter-go/internal/debounce"
)

const DefaultDelay = 350 * time.Millisecond

type Option func(*Watcher)

// WithFilter drops events whose path does not satisfy keep.
func WithFilter(keep func(path string) bool) Option {
	return func(w *Watcher) { w.keep = keep }
}

func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithScheduler replaces the clock behind the reload debounce.
func WithScheduler(s debounce.Scheduler) Option {
	return func(w *Watcher) { w.sched = s }
}

// Watcher calls onChange once a burst of filesystem events under paths has
// settled.
type Watcher struct {
	mu       sync.Mutex
	paths    []string
	keep     func(string) bool
	delay    time.Duration
	sched    debounce.Scheduler
	onChange func()
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer
	enabled  bool
}

func New(paths []string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		paths:    append([]string(nil), paths...),
		delay:    DefaultDelay,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Watcher) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enabled
}

// Enable starts watching. It is a no-op when already enabled or when there
// is nothing to watch.
func (w *Watcher) Enable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enabled || len(w.paths) == 0 {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	for _, path := range w.paths {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := watcher.Add(path); err != nil {
			err := errors.Join(err, watcher.Close())
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w.debounce = debounce.NewWithScheduler(w.delay, w.onChange, w.sched)
	w.watcher = watcher
	w.enabled = true
	go w.loop(watcher)
	return nil
}

// Disable stops watching and drops any pending reload.
func (w *Watcher) Disable() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			slog.Error("watcher close", slog.Any("error", err))
		}
		w.watcher = nil
	}
	w.enabled = false
}

// Toggle flips the watcher and reports whether it is now enabled.
func (w *Watcher) Toggle() (bool, error) {
	if w.Enabled() {
		w.Disable()
		return false, nil
	}
	if err := w.Enable(); err != nil {
		return false, err
	}
	return w.Enabled(), nil
}

func (w *Watcher) Close() error {
	w.Disable()
	return nil
}

func (w *Watcher) loop(fw *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			w.schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if ShouldIgnore(ev.Name) {
		return false
	}
	return w.keep == nil || w.keep(ev.Name)
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.enabled || w.debounce == nil {
		return
	}
	slog.Debug("auto reload scheduled")
	w.debounce.Trigger()
}

// ShouldIgnore reports paths that churn during git operations without
// changing history, such as lock files.
func ShouldIgnore(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".lock", ".ipc", ".swp":
		return true
	}
	return strings.HasSuffix(name, "~")
}
