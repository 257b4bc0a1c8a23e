package engine

import (
	"time"

	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/project/filestore"
)

// Default configuration values.
const (
	DefaultViewportWidth  = 16
	DefaultViewportHeight = 16
	DefaultMaxUndoEntries = history.DefaultMaxEntries

	// maxSearchHistory bounds the remembered search patterns.
	maxSearchHistory = 100
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial bytes of the editor.
func WithContent(data []byte) Option {
	return func(e *Editor) {
		e.initContent = data
	}
}

// WithFormatter sets the initial formatter.
func WithFormatter(kind format.Kind) Option {
	return func(e *Editor) {
		e.formatter = format.New(kind)
	}
}

// WithViewportSize sets the initial viewport width (bytes per row) and
// height (rows).
func WithViewportSize(width, height int) Option {
	return func(e *Editor) {
		e.viewWidth = width
		e.viewHeight = height
	}
}

// WithMaxUndoEntries sets the maximum number of undo records.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.historyOpts = append(e.historyOpts, history.WithMaxEntries(max))
		}
	}
}

// WithUndoThreshold overrides the temporal grouping window of undo and redo.
func WithUndoThreshold(d time.Duration) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithThreshold(d))
	}
}

// WithClock sets the time source used to stamp undo records.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithClock(now))
	}
}

// WithReadOnly makes every mutation fail with ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(e *Editor) {
		e.readOnly = readOnly
	}
}

// WithFileStore sets the store used by LoadFile, Save and SaveAs.
func WithFileStore(store *filestore.FileStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithFilePath sets the path Save writes to.
func WithFilePath(path string) Option {
	return func(e *Editor) {
		e.filePath = path
	}
}
