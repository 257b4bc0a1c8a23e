package engine

import (
	"io"
)

// ============================================================================
// File I/O
// ============================================================================

// FilePath returns the path Save writes to.
func (e *Editor) FilePath() string {
	return e.filePath
}

// SetFilePath sets the path Save writes to.
func (e *Editor) SetFilePath(path string) {
	e.filePath = path
}

// Load replaces the buffer with everything read from r. History, cursor,
// viewport and tracked records are reset.
func (e *Editor) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	e.reset(data)
	return nil
}

// LoadFile reads path through the file store and makes it the save target.
func (e *Editor) LoadFile(path string) error {
	if e.store == nil {
		return ErrNoFileStore
	}
	data, err := e.store.Load(path)
	if err != nil {
		return err
	}
	e.reset(data)
	e.filePath = path
	return nil
}

// Save writes the buffer to the file path.
func (e *Editor) Save() error {
	if e.filePath == "" {
		return ErrPathNotSet
	}
	return e.SaveAs(e.filePath)
}

// SaveAs writes the buffer to path and makes it the save target.
func (e *Editor) SaveAs(path string) error {
	if e.store == nil {
		return ErrNoFileStore
	}
	if path == "" {
		return ErrPathNotSet
	}
	if err := e.store.Save(path, e.content.Bytes()); err != nil {
		return err
	}
	e.filePath = path
	return nil
}

// WriteTo writes the buffer to w.
func (e *Editor) WriteTo(w io.Writer) (int64, error) {
	return e.content.WriteTo(w)
}

func (e *Editor) reset(data []byte) {
	e.content.Reset(data)
	e.history.Clear()
	for _, rec := range e.records.Records() {
		e.records.Unregister(rec.Span.Start)
	}
	e.cursor.Reset(0, 1)
	e.resetSubcursor()
	e.viewport.SetOffset(0)
	e.changes.Record(0, true)
}
