package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philipparndt/gomeasure/internal/logging"
	"github.com/rs/zerolog"
)

// Watcher watches model sources and calls back once a burst of changes settles
type Watcher struct {
	fsw       *fsnotify.Watcher
	log       zerolog.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
}

// New creates a watcher with the given debounce interval
func New(debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fsw:       fsw,
		log:       logging.Component(log, "watcher"),
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Add starts watching files; callback receives the absolute path that changed
func (w *Watcher) Add(files []string, callback func(string)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := w.fsw.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		w.callbacks[absPath] = callback
		w.log.Debug().Str("path", absPath).Msg("watching")
	}

	return nil
}

// Run dispatches change events until ctx is cancelled or the watcher is closed
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.schedule(event.Name)
	case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
		// editors that save by renaming drop the inotify watch
		w.schedule(event.Name)
		w.rewatch(event.Name)
	}
}

// rewatch re-adds a replaced file once it exists again
func (w *Watcher) rewatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.callbacks[path]; !ok {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.log.Debug().Err(err).Str("path", path).Msg("file not back yet")
	}
}

// schedule calls the file's callback after the debounce interval,
// restarting the interval on every new event
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	callback, ok := w.callbacks[path]
	if !ok {
		return
	}

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.log.Debug().Str("path", path).Msg("changed")
		callback(path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// RemoveAll stops watching every file. Callbacks and pending timers are
// dropped even when some watches were already gone.
func (w *Watcher) RemoveAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for file := range w.callbacks {
		if err := w.fsw.Remove(file); err != nil {
			errs = append(errs, fmt.Errorf("failed to unwatch %s: %w", file, err))
		}
	}

	for _, timer := range w.timers {
		timer.Stop()
	}
	w.callbacks = make(map[string]func(string))
	w.timers = make(map[string]*time.Timer)
	return errors.Join(errs...)
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
