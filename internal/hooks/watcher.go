package hooks

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mark3labs/insightr/internal/logger"
)

// Watcher keeps a hooks Config current by reloading ConfigFileName whenever
// it changes in workDir. The directory is watched rather than the file so
// editors that replace the file on save are picked up too.
type Watcher struct {
	watcher *fsnotify.Watcher
	workDir string
	cfg     *Config
	mu      sync.RWMutex
	done    chan struct{}
	stopped chan struct{}
}

// NewWatcher loads the current config and prepares a watch on workDir.
func NewWatcher(workDir string) (*Watcher, error) {
	cfg, err := LoadConfig(workDir)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: w,
		workDir: workDir,
		cfg:     cfg,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start adds the directory watch and starts the event loop.
func (hw *Watcher) Start() error {
	if err := hw.watcher.Add(hw.workDir); err != nil {
		hw.watcher.Close()
		return err
	}
	go hw.eventLoop()
	logger.Debug("Watching %s for hook changes", filepath.Join(hw.workDir, ConfigFileName))
	return nil
}

// Stop shuts down the watcher and event loop.
func (hw *Watcher) Stop() error {
	close(hw.done)
	<-hw.stopped
	return hw.watcher.Close()
}

// Config returns the most recently loaded config, nil when there is none.
func (hw *Watcher) Config() *Config {
	hw.mu.RLock()
	defer hw.mu.RUnlock()
	return hw.cfg
}

func (hw *Watcher) eventLoop() {
	defer close(hw.stopped)

	for {
		select {
		case <-hw.done:
			return

		case event, ok := <-hw.watcher.Events:
			if !ok {
				return
			}
			hw.handleEvent(event)

		case err, ok := <-hw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Hooks watcher error: %v", err)
		}
	}
}

func (hw *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != ConfigFileName {
		return
	}

	cfg, err := LoadConfig(hw.workDir)
	if err != nil {
		// Keep the last good config while the file is mid-edit
		logger.Warn("Ignoring invalid hooks config: %v", err)
		return
	}

	hw.mu.Lock()
	hw.cfg = cfg
	hw.mu.Unlock()
	logger.Info("Reloaded hooks config (%s)", event.Op)
}
