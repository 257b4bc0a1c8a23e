// Package watcher reports external changes to the file open in the editor.
//
// A FileWatcher watches the directory holding the file, so atomic saves
// that replace the file by rename are still seen, and drops events for
// every other entry in that directory. Rapid changes are coalesced into
// one event per debounce window.
package watcher

import (
	"errors"
	"strings"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrIsDirectory   = errors.New("path is a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

// String returns the operations joined by "|", e.g. "CREATE|WRITE".
func (op Op) String() string {
	var parts []string
	for _, n := range opNames {
		if op.Has(n.op) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return o != 0 && op&o == o
}

// Gone reports whether the file no longer exists under its name.
func (op Op) Gone() bool {
	return op&(OpRemove|OpRename) != 0 && op&OpCreate == 0
}

// Event represents a change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op holds every operation seen during the debounce window.
	Op Op

	// Timestamp is when the last coalesced operation occurred.
	Timestamp time.Time
}

// Stats provides watcher status information.
type Stats struct {
	// Events is the number of events delivered.
	Events int64

	// Dropped is the number of events lost to a full channel.
	Dropped int64

	// Errors is the total number of errors encountered.
	Errors int64

	// LastError is the most recent error, if any.
	LastError error

	// StartTime is when the watcher was started.
	StartTime time.Time
}

// Config holds watcher configuration options.
type Config struct {
	// DebounceDelay is the delay before delivering events.
	// Events within this window are coalesced. Zero delivers at once.
	// Default: 100ms
	DebounceDelay time.Duration

	// BufferSize is the size of the event and error channels.
	// Default: 16
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    16,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			d = 0
		}
		c.DebounceDelay = d
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}
