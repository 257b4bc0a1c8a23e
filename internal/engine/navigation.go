package engine

import (
	"encoding/binary"

	"github.com/dshills/hexstorm/internal/engine/content"
)

// ============================================================================
// Cursor
// ============================================================================

// CursorOffset returns the first selected byte.
func (e *Editor) CursorOffset() int {
	return e.cursor.Offset()
}

// CursorLength returns the number of selected bytes.
func (e *Editor) CursorLength() int {
	return e.cursor.Length()
}

// CursorRealOffset returns the cursor's anchor.
func (e *Editor) CursorRealOffset() int {
	return e.cursor.RealOffset()
}

// CursorRealLength returns the cursor's signed length. A negative length
// selects backward from the anchor.
func (e *Editor) CursorRealLength() int {
	return e.cursor.RealLength()
}

// SetCursorOffset moves the cursor anchor. Offsets past the end of the
// buffer fail with a *content.BoundsError. The length is clamped to the
// new position.
func (e *Editor) SetCursorOffset(offset int) error {
	if offset < 0 || offset > e.content.Len() {
		return &content.BoundsError{Offset: offset, Length: e.cursor.RealLength(), Size: e.content.Len()}
	}
	e.cursor.SetOffset(offset)
	e.clampCursorLength()
	e.resetSubcursor()
	e.adjustViewport()
	return nil
}

// SetCursorLength changes the signed selection length.
//
// At the end of the buffer a forward selection is forced to one byte. A
// backward selection stops at offset 0. Forward selections stop at the
// end of the buffer. A zero length is ignored.
func (e *Editor) SetCursorLength(length int) {
	length = e.clampLength(e.cursor.RealOffset(), length)
	if length == 0 {
		return
	}
	e.cursor.SetLength(length)
	e.resetSubcursor()
	e.adjustViewport()
}

func (e *Editor) clampLength(anchor, length int) int {
	size := e.content.Len()
	switch {
	case anchor >= size && length > 0:
		return 1
	case length < 0:
		return max(length, -anchor)
	case length == 0:
		return 0
	default:
		return min(length, size-anchor)
	}
}

// clampCursorLength refits the current length after the anchor or the
// buffer changed.
func (e *Editor) clampCursorLength() {
	if e.cursor.RealOffset() > e.content.Len() {
		e.cursor.SetOffset(e.content.Len())
	}
	length := e.clampLength(e.cursor.RealOffset(), e.cursor.RealLength())
	if length == 0 {
		length = 1
	}
	e.cursor.SetLength(length)
}

// MakeSelection moves the cursor to offset and selects length bytes.
func (e *Editor) MakeSelection(offset, length int) error {
	if err := e.SetCursorOffset(offset); err != nil {
		return err
	}
	e.SetCursorLength(length)
	return nil
}

// moveTo collapses the cursor to one byte at offset, clamped to the buffer.
func (e *Editor) moveTo(offset int) {
	offset = max(0, min(offset, e.content.Len()))
	e.cursor.Reset(offset, 1)
	e.resetSubcursor()
	e.adjustViewport()
}

// CursorNextByte moves one byte forward.
func (e *Editor) CursorNextByte() {
	e.moveTo(e.cursor.Offset() + 1)
}

// CursorPrevByte moves one byte back.
func (e *Editor) CursorPrevByte() {
	e.moveTo(e.cursor.Offset() - 1)
}

// CursorNextLine moves one viewport row forward.
func (e *Editor) CursorNextLine() {
	e.moveTo(e.cursor.RealOffset() + e.viewport.Width())
}

// CursorPrevLine moves one viewport row back.
func (e *Editor) CursorPrevLine() {
	e.moveTo(e.cursor.RealOffset() - min(e.cursor.RealOffset(), e.viewport.Width()))
}

// CursorToStart moves to offset 0.
func (e *Editor) CursorToStart() {
	e.moveTo(0)
}

// CursorToEnd moves to the last byte, or to 0 in an empty buffer.
func (e *Editor) CursorToEnd() {
	e.moveTo(max(0, e.content.Len()-1))
}

// CursorIncreaseLength grows the selection by one byte.
func (e *Editor) CursorIncreaseLength() {
	e.SetCursorLength(e.cursor.Grown())
}

// CursorDecreaseLength shrinks the selection by one byte. Shrinking a
// one-byte selection turns it backward.
func (e *Editor) CursorDecreaseLength() {
	e.SetCursorLength(e.cursor.Shrunk())
}

// CursorIncreaseLengthByLine grows the selection by one viewport row.
func (e *Editor) CursorIncreaseLengthByLine() {
	e.SetCursorLength(e.cursor.GrownBy(e.viewport.Width()))
}

// CursorDecreaseLengthByLine shrinks the selection by one viewport row.
func (e *Editor) CursorDecreaseLengthByLine() {
	e.SetCursorLength(e.cursor.ShrunkBy(e.viewport.Width()))
}

// ============================================================================
// Subcursor
// ============================================================================

// SubcursorOffset returns the selected digit, counted from the first
// digit of the first selected byte.
func (e *Editor) SubcursorOffset() int {
	return e.subcursor.Offset()
}

// SubcursorLength returns the digits per byte of the active formatter.
func (e *Editor) SubcursorLength() int {
	return e.subcursor.Length()
}

// SetSubcursorOffset selects a digit. Offsets wrap around the digits of
// the selection.
func (e *Editor) SetSubcursorOffset(offset int) {
	span := e.subcursor.Length() * e.cursor.Length()
	if span <= 0 {
		e.subcursor.SetOffset(0)
		return
	}
	offset %= span
	if offset < 0 {
		offset += span
	}
	e.subcursor.SetOffset(offset)
}

// SubcursorNextDigit selects the following digit, wrapping to the first.
func (e *Editor) SubcursorNextDigit() {
	e.SetSubcursorOffset(e.subcursor.Offset() + 1)
}

// SubcursorPrevDigit selects the previous digit. It stops at the first.
func (e *Editor) SubcursorPrevDigit() {
	if e.subcursor.Offset() != 0 {
		e.SetSubcursorOffset(e.subcursor.Offset() - 1)
	}
}

func (e *Editor) resetSubcursor() {
	e.subcursor.Reset(0, e.formatter.DigitsPerByte())
}

// ============================================================================
// Selection
// ============================================================================

// Selected returns a copy of the selected bytes.
func (e *Editor) Selected() []byte {
	return e.content.Chunk(e.cursor.Offset(), e.cursor.Length())
}

// SelectedBigEndian returns the selection read as a big-endian unsigned
// integer.
func (e *Editor) SelectedBigEndian() (uint64, error) {
	sel := e.Selected()
	if len(sel) > 8 {
		return 0, ErrSelectionTooWide
	}
	var buf [8]byte
	copy(buf[8-len(sel):], sel)
	return binary.BigEndian.Uint64(buf[:]), nil
}

// SelectedLittleEndian returns the selection read as a little-endian
// unsigned integer.
func (e *Editor) SelectedLittleEndian() (uint64, error) {
	sel := e.Selected()
	if len(sel) > 8 {
		return 0, ErrSelectionTooWide
	}
	var buf [8]byte
	copy(buf[:], sel)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Copy puts the selection on the clipboard and returns it.
func (e *Editor) Copy() []byte {
	e.clipboard = e.Selected()
	return e.clipboard
}

// Clipboard returns the clipboard content.
func (e *Editor) Clipboard() []byte {
	return e.clipboard
}

// SetClipboard replaces the clipboard content.
func (e *Editor) SetClipboard(data []byte) {
	e.clipboard = append([]byte(nil), data...)
}
