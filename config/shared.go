// ABOUTME: Thread-safe config holder and file watcher for live reloads
// ABOUTME: Lets the playlist library pick up edited settings without a restart

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce gives editors time to finish atomic writes
const reloadDebounce = 100 * time.Millisecond

// SharedConfig provides goroutine-safe access to the current Config
type SharedConfig struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSharedConfig wraps an initial config
func NewSharedConfig(cfg Config) *SharedConfig {
	return &SharedConfig{cfg: cfg}
}

// Get returns a copy of the current config
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.cfg
}

// Update replaces the current config
func (sc *SharedConfig) Update(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cfg = cfg
}

// Watch reloads path into shared whenever the file is written, until ctx is done.
// The parent directory is watched so files created after startup are picked up.
// onReload is called after every reload attempt (err is nil on success) and may be nil.
func Watch(ctx context.Context, path string, shared *SharedConfig, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()

		return errors.Wrap(err, "failed to watch config directory")
	}

	target := filepath.Clean(path)

	go func() {
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != target {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				time.Sleep(reloadDebounce)

				cfg, err := LoadConfig(path)
				if err == nil {
					shared.Update(cfg)
				}

				if onReload != nil {
					onReload(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				if onReload != nil {
					onReload(errors.Wrap(err, "config watcher"))
				}
			}
		}
	}()

	return nil
}
