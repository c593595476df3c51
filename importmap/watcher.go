package importmap

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher keeps an import map file loaded, reloading it when it changes. An
// invalid edit is logged and the last valid map stays current.
type Watcher struct {
	path string
	log  zerolog.Logger

	mu        sync.RWMutex
	current   *Map
	callbacks []func(*Map)
}

// NewWatcher loads path, failing if it isn't a valid import map.
func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	m, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, log: log, current: m}, nil
}

// Current returns the last valid import map.
func (w *Watcher) Current() *Map {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback for every successful reload.
func (w *Watcher) OnChange(callback func(*Map)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Run watches the file until ctx is done. The directory is watched rather
// than the file, so editors that save by replacing the file are followed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create import map watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch import map directory: %w", err)
	}

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			w.log.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("import map change detected")
			w.Reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("import map watcher error")
		}
	}
}

// Reload reads the file again, reporting whether it was valid.
func (w *Watcher) Reload() bool {
	m, err := ReadFile(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("failed to reload import map, keeping the previous one")
		return false
	}

	w.mu.Lock()
	w.current = m
	callbacks := make([]func(*Map), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		callback(m)
	}
	w.log.Info().Str("file", w.path).Msg("import map reloaded")
	return true
}
