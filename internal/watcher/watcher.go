package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher monitors directories with debouncing.
// It collects rapid changes and triggers a single callback after things settle.
type FileWatcher struct {
	debounceDelay time.Duration
	log           *zap.SugaredLogger

	// Debouncing state
	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths map[string]struct{}
	stopped      bool

	// Callback when changes are ready
	onChange func([]string)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a file watcher with the specified debounce delay.
// The onChange callback is called with changed paths after debouncing.
func NewWatcher(debounceDelay time.Duration, onChange func([]string)) *FileWatcher {
	return &FileWatcher{
		debounceDelay: debounceDelay,
		log:           zap.NewNop().Sugar(),
		pendingPaths:  make(map[string]struct{}),
		onChange:      onChange,
		done:          make(chan struct{}),
	}
}

// SetLogger replaces the no-op logger.
func (w *FileWatcher) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		w.log = log
	}
}

// Watch starts fsnotify watches on dirs. Directories that do not exist are
// skipped; it is an error only if none of the others can be watched.
func (w *FileWatcher) Watch(dirs ...string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	var watched int
	var errs []error
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				w.log.Debugw("Skipping missing directory", "dir", dir)
				continue
			}
			errs = append(errs, fmt.Errorf("watch %s: %w", dir, err))
			continue
		}
		watched++
	}
	if watched == 0 && len(errs) > 0 {
		fsw.Close() //nolint:errcheck
		return errors.Join(errs...)
	}
	for _, err := range errs {
		w.log.Warnw("Directory not watched", "error", err)
	}

	w.fsw = fsw
	w.wg.Add(1)
	go w.loop()
	return nil
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.FileChanged(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("fsnotify error", "error", err)
		}
	}
}

// FileChanged notifies the watcher of a file change.
// Multiple rapid calls are debounced into a single onChange callback.
func (w *FileWatcher) FileChanged(path string) {
	w.FilesChanged([]string{path})
}

// FilesChanged notifies the watcher of multiple file changes.
func (w *FileWatcher) FilesChanged(paths []string) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.stopped {
		return
	}

	added := false
	for _, path := range paths {
		if !shouldIgnore(path) {
			w.pendingPaths[path] = struct{}{}
			added = true
		}
	}
	if !added {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// Stop closes the fsnotify watch and drops pending changes.
func (w *FileWatcher) Stop() {
	w.timerMu.Lock()
	if w.stopped {
		w.timerMu.Unlock()
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingPaths = make(map[string]struct{})
	w.timerMu.Unlock()

	close(w.done)
	if w.fsw != nil {
		w.fsw.Close() //nolint:errcheck
	}
	w.wg.Wait()
}

// processPending is called after debounce delay.
// It triggers the onChange callback with accumulated paths.
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()

	paths := make([]string, 0, len(w.pendingPaths))
	for path := range w.pendingPaths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	w.pendingPaths = make(map[string]struct{})
	w.timer = nil
	stopped := w.stopped

	w.timerMu.Unlock()

	// Trigger callback (outside lock)
	if !stopped && len(paths) > 0 && w.onChange != nil {
		w.onChange(paths)
	}
}

// shouldIgnore keeps visible *.plist files only.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return filepath.Ext(base) != ".plist"
}

// Dirs returns the distinct directories of paths, sorted.
func Dirs(paths []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range paths {
		d := filepath.Dir(p)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
