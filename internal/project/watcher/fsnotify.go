package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single file using fsnotify.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce *debouncer

	mu       sync.Mutex
	events   chan Event
	errors   chan error
	stats    Stats
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher starts watching path. The file must exist.
func NewFileWatcher(path string, opts ...Option) (*FileWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("watch %s: %w", path, ErrPathNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("watch %s: %w", path, ErrIsDirectory)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &FileWatcher{
		path:    abs,
		watcher: fsw,
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}
	w.stats.StartTime = time.Now()
	w.debounce = newDebouncer(config.DebounceDelay, w.sendEvent)

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the channel of change events.
// The channel is closed when the watcher is closed.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
// The channel is closed when the watcher is closed.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Flush delivers any pending debounced event now.
func (w *FileWatcher) Flush() {
	w.debounce.flush()
}

// Pending reports whether an event is waiting out the debounce delay.
func (w *FileWatcher) Pending() bool {
	return w.debounce.hasPending()
}

// Stats returns watcher statistics.
func (w *FileWatcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Close stops the watcher and closes its channels. Pending events are
// discarded.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.debounce.stop()
	err := w.watcher.Close()
	w.closedWg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// processLoop forwards fsnotify events until the watcher closes.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.recordError(err)
		}
	}
}

// handleFSEvent keeps events naming the watched file.
func (w *FileWatcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	op := convertOp(event.Op)
	if op == 0 {
		return
	}
	w.debounce.add(Event{Path: w.path, Op: op, Timestamp: time.Now()})
}

// sendEvent delivers without blocking; a full channel drops the event.
func (w *FileWatcher) sendEvent(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.events <- event:
		w.stats.Events++
	default:
		w.stats.Dropped++
	}
}

func (w *FileWatcher) recordError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Errors++
	w.stats.LastError = err
	if w.closed {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// convertOp converts fsnotify operations to watcher operations.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
