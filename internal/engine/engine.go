package engine

import (
	"github.com/dshills/hexstorm/internal/engine/content"
	"github.com/dshills/hexstorm/internal/engine/cursor"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/structured"
	"github.com/dshills/hexstorm/internal/engine/tracking"
	"github.com/dshills/hexstorm/internal/project/filestore"
	"github.com/dshills/hexstorm/internal/renderer/viewport"
)

// Re-export commonly used types for convenience.
type (
	// Edit describes a splice delivered to observers.
	Edit = cursor.Edit

	// Change is an entry returned by FetchChangedOffsets.
	Change = tracking.Change

	// Observer is told about every applied edit.
	Observer = tracking.Observer

	// MaskOp is a bitwise mask operation.
	MaskOp = content.MaskOp
)

// Re-export constants.
const (
	MaskAnd  = content.And
	MaskOr   = content.Or
	MaskXor  = content.Xor
	MaskNand = content.Nand
	MaskNor  = content.Nor
)

// Editor owns the byte buffer and everything addressing it: the cursor,
// the digit-level subcursor, the viewport, undo history and the active
// formatter. It is the single command surface for the shell and the
// renderer.
//
// Editor is not safe for concurrent use. The application owns it and
// serializes every call.
type Editor struct {
	content   *content.Content
	cursor    cursor.Cursor
	subcursor cursor.Cursor
	viewport  *viewport.Viewport
	history   *history.History
	formatter format.Formatter

	changes  *tracking.Changes
	notifier *tracking.Notifier
	records  *structured.Registry
	store    *filestore.FileStore

	clipboard     []byte
	searchHistory []string
	filePath      string
	userMessage   string
	errorMessage  string

	readOnly bool
	fixing   bool

	// Creation-time settings
	initContent []byte
	viewWidth   int
	viewHeight  int
	historyOpts []history.Option
}

// New creates an editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		formatter:  format.New(format.Hex),
		viewWidth:  DefaultViewportWidth,
		viewHeight: DefaultViewportHeight,
		changes:    tracking.NewChanges(),
		notifier:   &tracking.Notifier{},
		records:    structured.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.content = content.New(e.initContent)
	e.initContent = nil
	e.viewport = viewport.NewViewport(e.viewWidth, e.viewHeight)
	e.history = history.New(e.historyOpts...)
	e.notifier.Subscribe(e.records)
	e.cursor = cursor.New(0, 1)
	e.resetSubcursor()
	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Len returns the buffer length in bytes.
func (e *Editor) Len() int {
	return e.content.Len()
}

// Bytes returns a copy of the whole buffer.
func (e *Editor) Bytes() []byte {
	return e.content.Bytes()
}

// Chunk returns up to length bytes at offset. It never fails.
func (e *Editor) Chunk(offset, length int) []byte {
	return e.content.Chunk(offset, length)
}

// Byte returns the byte at offset.
func (e *Editor) Byte(offset int) (byte, bool) {
	return e.content.Byte(offset)
}

// IsReadOnly returns true if mutations are rejected.
func (e *Editor) IsReadOnly() bool {
	return e.readOnly
}

// FetchChangedOffsets returns the offsets touched since the previous call,
// ordered by offset. A change with LengthChanged set invalidates
// everything after it.
func (e *Editor) FetchChangedOffsets() []Change {
	return e.changes.Drain()
}

// Subscribe registers an observer for applied edits and returns a
// function that removes it. Observers must not call mutating methods.
func (e *Editor) Subscribe(o Observer) (unsubscribe func()) {
	return e.notifier.Subscribe(o)
}

// ============================================================================
// Formatter
// ============================================================================

// Formatter returns the active formatter.
func (e *Editor) Formatter() format.Formatter {
	return e.formatter
}

// DisplayRatio returns the screen columns one byte takes in the digit panel.
func (e *Editor) DisplayRatio() int {
	return e.formatter.DisplayRatio()
}

// SetFormatter switches the active formatter. The subcursor is reset and
// the whole screen is marked for redraw.
func (e *Editor) SetFormatter(kind format.Kind) {
	e.formatter = format.New(kind)
	e.resetSubcursor()
	e.changes.Record(0, true)
}

// ToggleFormatter cycles to the next formatter.
func (e *Editor) ToggleFormatter() format.Formatter {
	e.SetFormatter(e.formatter.Next().Kind())
	return e.formatter
}

// ============================================================================
// Viewport
// ============================================================================

// Viewport returns the visible window.
func (e *Editor) Viewport() *viewport.Viewport {
	return e.viewport
}

// SetViewportSize resizes the window and scrolls it so the cursor stays
// visible.
func (e *Editor) SetViewportSize(width, height int) {
	e.viewport.Resize(width, height)
	e.adjustViewport()
	e.changes.Record(0, true)
}

// adjustViewport slides the window by whole rows until the moving end of
// the cursor is visible.
func (e *Editor) adjustViewport() {
	position := e.cursor.Offset()
	if e.cursor.RealLength() > 0 {
		position = e.cursor.Offset() + e.cursor.Length() - 1
	}
	e.viewport.Follow(position)
}

// ============================================================================
// Structured Records
// ============================================================================

// RegisterRecord starts tracking the length-prefixed record at offset.
// Later edits inside it rewrite its prefix.
func (e *Editor) RegisterRecord(offset int, codec structured.Codec) (structured.Record, error) {
	return e.records.Register(offset, codec, e.content.Chunk)
}

// UnregisterRecord stops tracking the record containing offset.
func (e *Editor) UnregisterRecord(offset int) bool {
	return e.records.Unregister(offset)
}

// Records returns the tracked records ordered by offset.
func (e *Editor) Records() []structured.Record {
	return e.records.Records()
}

// ============================================================================
// Messages
// ============================================================================

// UserMessage returns the informational status message.
func (e *Editor) UserMessage() string {
	return e.userMessage
}

// SetUserMessage sets the informational status message.
func (e *Editor) SetUserMessage(msg string) {
	e.userMessage = msg
}

// ErrorMessage returns the error status message.
func (e *Editor) ErrorMessage() string {
	return e.errorMessage
}

// SetErrorMessage sets the error status message.
func (e *Editor) SetErrorMessage(msg string) {
	e.errorMessage = msg
}

// ClearMessages clears both status messages.
func (e *Editor) ClearMessages() {
	e.userMessage = ""
	e.errorMessage = ""
}
