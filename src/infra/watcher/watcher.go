package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceSecs = 5

// Watcher monitors a directory for new audio files and emits a debounced
// event so the caller can rescan it.
type Watcher struct {
	watcher       *fsnotify.Watcher
	watchPath     string
	extensions    map[string]bool
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	running       bool
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
}

// NewWatcher creates a new file system watcher. Extensions are compared
// case-insensitively, with or without a leading dot.
func NewWatcher(eventChan chan<- FileEvent, extensions []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &Watcher{
		watcher:    fsw,
		extensions: allowed,
		eventChan:  eventChan,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching the given path for file changes
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting file watcher", "path", watchPath)

	if err := w.watcher.Add(watchPath); err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)

	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping file watcher")
	w.running = false
	close(w.stopChan)

	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMutex.Unlock()

	w.watcher.Close()
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != fsnotify.Create {
		return
	}
	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	slog.Info("Detected new audio file", "file", event.Name)

	// Start or reset the debounce timer so a batch copy triggers one rescan.
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(debounceSecs*time.Second, func() {
		w.emitDebounceEvent()
	})
}

// emitDebounceEvent emits a file event after the debounce period
func (w *Watcher) emitDebounceEvent() {
	event := FileEvent{
		Path:      w.watchPath,
		EventType: FileCreated,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Debug("Emitted file event after debounce", "path", event.Path)
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
