// Package watcher watches the deskpet directory for settings and daemon changes.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deskpet-io/deskpet/internal/config"
)

// DebounceDelay is how long a path must stay quiet before its change is reported.
const DebounceDelay = 100 * time.Millisecond

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventSettingsChanged EventType = iota // storage.json rewritten
	EventDaemonChanged                    // daemon.yaml written
	EventDaemonRemoved                    // daemon.yaml deleted
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings-changed"
	case EventDaemonChanged:
		return "daemon-changed"
	case EventDaemonRemoved:
		return "daemon-removed"
	default:
		return "unknown"
	}
}

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher reports changes to the files deskpet keeps in one directory.
type Watcher struct {
	dir        string
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for dir. An empty dir means the global deskpet directory.
func New(dir string) (*Watcher, error) {
	if dir == "" {
		globalDir, err := config.GlobalDir()
		if err != nil {
			return nil, err
		}
		dir = globalDir
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		dir:        dir,
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 100),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher. The directory must exist.
func (w *Watcher) Start() error {
	// Watch the directory, not the files: atomic writes replace the inode.
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	log.Printf("[watcher] Watching %s", w.dir)

	go w.processEvents()
	return nil
}

// Stop stops the watcher. Pending debounced changes are discarded.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	eventType, ok := classify(event)
	if !ok {
		return
	}

	w.debounceEvent(event.Name, func() {
		log.Printf("[watcher] %s: %s", eventType, event.Name)
		select {
		case w.eventsChan <- Event{Type: eventType, Path: event.Name}:
		case <-w.done:
		}
	})
}

// classify maps a raw notification to the event it stands for. Rename counts
// as a write: the file stores write a temp file and rename it over the target.
func classify(event fsnotify.Event) (EventType, bool) {
	switch filepath.Base(event.Name) {
	case config.StorageFileName:
		if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
			return EventSettingsChanged, true
		}
	case config.DaemonFileName:
		if event.Op&fsnotify.Remove != 0 {
			return EventDaemonRemoved, true
		}
		if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
			return EventDaemonChanged, true
		}
	}
	return 0, false
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}
