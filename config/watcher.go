package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"renkon/scenario"
)

// Watcher watches a scenario file for changes and applies reloaded
// scenarios to the registry.
type Watcher struct {
	path     string
	registry *scenario.Registry
	logger   *zap.Logger

	mu     sync.Mutex
	stopCh chan struct{}

	// OnReload, when set, runs after every successful reload.
	OnReload func()
}

// NewWatcher creates a new scenario file watcher
func NewWatcher(path string, registry *scenario.Registry, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		registry: registry,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start starts watching the scenario file for changes
func (w *Watcher) Start() {
	go w.watchWithFsnotify()
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// watchWithFsnotify uses fsnotify to watch for file changes
func (w *Watcher) watchWithFsnotify() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("Failed to create fsnotify watcher, falling back to polling", zap.Error(err))
		w.watchWithPolling(5 * time.Second)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		w.logger.Warn("Failed to watch scenario file, falling back to polling", zap.Error(err))
		w.watchWithPolling(5 * time.Second)
		return
	}

	w.logger.Info("Started watching scenario file", zap.String("path", w.path))

	// Debounce timer to avoid rapid reloads
	var debounceTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			w.logger.Info("Scenario watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only reload on write or create events
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce: cancel previous timer and set a new one
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.reload()
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// watchWithPolling polls for file changes at regular intervals
func (w *Watcher) watchWithPolling(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("Started polling scenario file",
		zap.Duration("interval", interval),
		zap.String("path", w.path))

	for {
		select {
		case <-w.stopCh:
			w.logger.Info("Scenario watcher stopped")
			return
		case <-ticker.C:
			w.reload()
		}
	}
}

// reload re-reads the scenario file and swaps the registry contents.
// Sessions whose action lists changed restart their pipelines on their
// next request; unchanged lists keep their cursors.
func (w *Watcher) reload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := Apply(w.path, w.registry); err != nil {
		w.logger.Error("Failed to reload scenarios (keeping old configuration)", zap.Error(err))
		return
	}

	w.logger.Info("Scenarios reloaded", zap.Int("count", w.registry.Len()))
	if w.OnReload != nil {
		w.OnReload()
	}
}
