// Package watcher re-runs a file handler when watched files change.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce       time.Duration // Quiet period before a changed file is handled
	IgnorePatterns []string      // Base-name globs to ignore, added to the defaults
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce: 500 * time.Millisecond,
	}
}

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	FilesChanged   int
	FilesUnchanged int
	FilesIgnored   int
	Errors         int
	Duration       time.Duration
}

// FileHandler processes a changed file and reports whether it rewrote it.
type FileHandler func(path string) (changed bool, err error)

// ErrorHandler receives handler and fsnotify errors. It may be nil.
type ErrorHandler func(path string, err error)

// Watcher monitors directories for file changes.
type Watcher struct {
	config      *WatchConfig
	fileHandler FileHandler
	onError     ErrorHandler
	accept      func(path string) bool
	fsWatcher   *fsnotify.Watcher
	fileFilter  *FileFilter
	debouncer   *Debouncer
	done        chan struct{}
	wg          sync.WaitGroup
	startTime   time.Time

	mu      sync.Mutex
	summary WatchSummary
}

// New creates a new Watcher with the given configuration.
// If config is nil, default configuration is used.
func New(config *WatchConfig, fileHandler FileHandler) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	w := &Watcher{
		config:      config,
		fileHandler: fileHandler,
		fileFilter:  NewFileFilter(append(DefaultIgnorePatterns(), config.IgnorePatterns...)),
		done:        make(chan struct{}),
	}
	w.debouncer = NewDebouncer(config.Debounce, w.handleFile)
	return w
}

// OnError installs a callback for errors seen while watching.
func (w *Watcher) OnError(fn ErrorHandler) {
	w.onError = fn
}

// Accept restricts handled paths to those for which fn returns true.
func (w *Watcher) Accept(fn func(path string) bool) {
	w.accept = fn
}

// Start begins watching the specified directories for file changes.
// Directories are not watched recursively; pass every directory to watch.
// The watcher runs until Stop() is called.
func (w *Watcher) Start(dirs []string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			w.fsWatcher.Close()
			return err
		}
		if err := w.fsWatcher.Add(absDir); err != nil {
			w.fsWatcher.Close()
			return err
		}
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop shuts down the watcher, drops pending events and returns a summary
// of the session.
func (w *Watcher) Stop() *WatchSummary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	summary := w.summary
	summary.Duration = time.Since(w.startTime)
	return &summary
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Editors either write in place or create a new file and rename it over the old one.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.queue(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.reportError("", err)
		}
	}
}

func (w *Watcher) queue(path string) {
	if w.fileFilter.ShouldIgnore(path) || (w.accept != nil && !w.accept(path)) {
		w.mu.Lock()
		w.summary.FilesIgnored++
		w.mu.Unlock()
		return
	}
	w.debouncer.Add(path)
}

func (w *Watcher) handleFile(path string) {
	if w.fileHandler == nil {
		return
	}
	changed, err := w.fileHandler(path)

	w.mu.Lock()
	switch {
	case err != nil:
		w.summary.Errors++
	case changed:
		w.summary.FilesChanged++
	default:
		w.summary.FilesUnchanged++
	}
	w.mu.Unlock()

	if err != nil {
		w.reportError(path, err)
	}
}

func (w *Watcher) reportError(path string, err error) {
	if w.onError != nil {
		w.onError(path, err)
	}
}

// GetConfig returns the current watcher configuration.
func (w *Watcher) GetConfig() *WatchConfig {
	return w.config
}

// IsRunning returns true if the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
