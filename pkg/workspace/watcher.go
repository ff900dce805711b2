package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/designc/pkg/compiler"
)

// WatchOptions configures the workspace watcher.
type WatchOptions struct {
	// DebounceMs groups rapid saves of the same file into one
	// recompile. Defaults to 200ms.
	DebounceMs int
}

// EventKind identifies what a watch event reported.
type EventKind int

const (
	// EventCompiled means a document was recompiled after a change.
	EventCompiled EventKind = iota
	// EventRemoved means a document was deleted or renamed away.
	EventRemoved
	// EventThemeReloaded means the theme file changed and every
	// cached document was invalidated.
	EventThemeReloaded
	// EventError means a recompile or theme reload failed.
	EventError
)

// Event is delivered to the watch callback for every change the
// watcher acts on.
type Event struct {
	Kind   EventKind
	Path   string
	Output *compiler.Output
	Err    error
}

// Watcher recompiles workspace documents as they change on disk.
// Theme file edits purge everything, since token names may shift in
// every document.
type Watcher struct {
	ws      *Workspace
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	options WatchOptions
	onEvent func(Event)

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher over ws. onEvent may be nil.
func NewWatcher(ws *Workspace, options WatchOptions, onEvent func(Event), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	return &Watcher{
		ws:             ws,
		watcher:        fsw,
		logger:         logger,
		options:        options,
		onEvent:        onEvent,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start adds watches for the workspace root and its subdirectories and
// begins processing events in a background goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	root := w.ws.Root()
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if info.IsDir() {
			if shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("workspace watcher started", "root", root)

	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("workspace watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
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
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	isTheme := w.ws.ThemePath() != "" && path == w.ws.ThemePath()
	if !isTheme && !isDocumentPath(path) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		if isTheme {
			w.debounce(path, w.reloadTheme)
		} else {
			w.debounce(path, func() { w.recompile(path) })
		}

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		if isTheme {
			return
		}
		w.ws.Invalidate(path)
		w.onEvent(Event{Kind: EventRemoved, Path: path})
	}
}

// debounce schedules fn after the debounce window, replacing any
// pending run for the same path.
func (w *Watcher) debounce(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			fn()

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) recompile(path string) {
	w.ws.Invalidate(path)

	out, err := w.ws.CompileFile(context.Background(), path)
	if err != nil {
		w.logger.Warn("recompile failed", "file", path, "error", err)
		w.onEvent(Event{Kind: EventError, Path: path, Err: err})
		return
	}

	w.logger.Debug("document recompiled", "file", path)
	w.onEvent(Event{Kind: EventCompiled, Path: path, Output: out})
}

func (w *Watcher) reloadTheme() {
	if err := w.ws.ReloadTheme(); err != nil {
		w.logger.Warn("theme reload failed", "error", err)
		w.onEvent(Event{Kind: EventError, Path: w.ws.ThemePath(), Err: err})
		return
	}
	w.onEvent(Event{Kind: EventThemeReloaded, Path: w.ws.ThemePath()})
}

// GetStats returns watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := !w.stopped
	w.mu.Unlock()

	return WatcherStats{
		PendingRecompiles: pending,
		IsRunning:         running,
	}
}

// WatcherStats contains watcher statistics.
type WatcherStats struct {
	PendingRecompiles int
	IsRunning         bool
}

func isDocumentPath(path string) bool {
	return strings.HasSuffix(path, ".design.json")
}

func shouldIgnoreDir(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	return false
}
