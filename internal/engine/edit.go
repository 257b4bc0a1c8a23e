package engine

import (
	"fmt"

	"github.com/dshills/hexstorm/internal/engine/content"
	"github.com/dshills/hexstorm/internal/engine/format"
	"github.com/dshills/hexstorm/internal/engine/history"
	"github.com/dshills/hexstorm/internal/engine/search"
)

// ============================================================================
// Write Operations
// ============================================================================

// InsertBytes splices data in before offset.
func (e *Editor) InsertBytes(offset int, data []byte) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.content.Insert(offset, data); err != nil {
		return err
	}
	e.commit(Edit{Offset: offset, Inserted: len(data)}, offset, len(data), nil)
	return nil
}

// RemoveBytes deletes up to length bytes at offset and returns what was
// removed. Ranges past the end of the buffer are clamped.
func (e *Editor) RemoveBytes(offset, length int) ([]byte, error) {
	if e.readOnly {
		return nil, ErrReadOnly
	}
	removed := e.content.Remove(offset, length)
	e.commit(Edit{Offset: offset, Removed: len(removed)}, offset, 0, removed)
	return removed, nil
}

// OverwriteBytes replaces len(data) bytes at offset with data, growing
// the buffer if data runs past its end.
func (e *Editor) OverwriteBytes(offset int, data []byte) error {
	if e.readOnly {
		return ErrReadOnly
	}
	removed, err := e.content.Overwrite(offset, data)
	if err != nil {
		return err
	}
	e.commit(Edit{Offset: offset, Removed: len(removed), Inserted: len(data)}, offset, len(data), removed)
	return nil
}

// InsertAtCursor inserts data before the cursor and moves the cursor past it.
func (e *Editor) InsertAtCursor(data []byte) error {
	offset := e.cursor.Offset()
	if err := e.InsertBytes(offset, data); err != nil {
		return err
	}
	e.moveTo(offset + len(data))
	return nil
}

// OverwriteAtCursor overwrites bytes at the cursor and moves past them.
func (e *Editor) OverwriteAtCursor(data []byte) error {
	offset := e.cursor.Offset()
	if err := e.OverwriteBytes(offset, data); err != nil {
		return err
	}
	e.moveTo(offset + len(data))
	return nil
}

// RemoveAtCursor deletes the selection and returns it.
func (e *Editor) RemoveAtCursor() ([]byte, error) {
	offset := e.cursor.Offset()
	removed, err := e.RemoveBytes(offset, e.cursor.Length())
	if err != nil {
		return nil, err
	}
	e.moveTo(offset)
	return removed, nil
}

// Backspace deletes the byte before the cursor.
func (e *Editor) Backspace() error {
	offset := e.cursor.Offset()
	if offset == 0 {
		return nil
	}
	if _, err := e.RemoveBytes(offset-1, 1); err != nil {
		return err
	}
	e.moveTo(offset - 1)
	return nil
}

// IncrementByte adds one to the big-endian word of wordSize bytes ending
// at offset, carrying leftward inside the word.
func (e *Editor) IncrementByte(offset, wordSize int) error {
	return e.step(offset, wordSize, e.content.Increment)
}

// DecrementByte subtracts one from the word ending at offset.
func (e *Editor) DecrementByte(offset, wordSize int) error {
	return e.step(offset, wordSize, e.content.Decrement)
}

// IncrementAtCursor increments the selection as one big-endian word.
func (e *Editor) IncrementAtCursor() error {
	return e.IncrementByte(e.cursor.End()-1, e.cursor.Length())
}

// DecrementAtCursor decrements the selection as one big-endian word.
func (e *Editor) DecrementAtCursor() error {
	return e.DecrementByte(e.cursor.End()-1, e.cursor.Length())
}

func (e *Editor) step(offset, wordSize int, fn func(int, int) ([]byte, error)) error {
	if e.readOnly {
		return ErrReadOnly
	}
	old, err := fn(offset, wordSize)
	if err != nil {
		return err
	}
	first := offset + 1 - len(old)
	e.commit(Edit{Offset: first, Removed: len(old), Inserted: len(old)}, first, len(old), old)
	return nil
}

// ApplyMask combines the selection with mask using op. A mask shorter
// than the selection is repeated over it.
func (e *Editor) ApplyMask(op MaskOp, mask []byte) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if len(mask) == 0 {
		return ErrEmptyMask
	}
	if e.cursor.Length() != 1 {
		mask = content.RepeatMask(mask, e.cursor.Length())
	}
	offset := e.cursor.Offset()
	old, err := e.content.ApplyMask(offset, mask, op)
	if err != nil {
		return err
	}
	e.commit(Edit{Offset: offset, Removed: len(old), Inserted: len(old)}, offset, len(old), old)
	return nil
}

// BitwiseNot inverts every bit of the selection.
func (e *Editor) BitwiseNot() error {
	return e.ApplyMask(MaskXor, []byte{0xFF})
}

// ReplaceDigit sets the digit under the subcursor to r, read in the
// active formatter's radix.
func (e *Editor) ReplaceDigit(r rune) error {
	if e.readOnly {
		return ErrReadOnly
	}
	radix := e.formatter.Radix()
	value, ok := format.DigitValue(r, radix)
	if !ok {
		return fmt.Errorf("digit %q in radix %d: %w", r, radix, content.ErrInvalidDigit)
	}

	digits := e.subcursor.Length()
	offset := e.cursor.Offset() + e.subcursor.Offset()/digits
	position := digits - 1 - e.subcursor.Offset()%digits
	old, err := e.content.ReplaceDigit(offset, position, value, radix)
	if err != nil {
		return err
	}
	e.commit(Edit{Offset: offset, Removed: 1, Inserted: 1}, offset, 1, []byte{old})
	return nil
}

// Replace overwrites every match of pattern with data, last match first,
// and returns the matches as they were before replacing.
func (e *Editor) Replace(pattern string, data []byte) ([]search.Match, error) {
	if e.readOnly {
		return nil, ErrReadOnly
	}
	matches, err := e.content.FindAll(pattern)
	if err != nil {
		return nil, err
	}
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		removed := e.content.Remove(m.Start, m.Len())
		// Cannot fail: m.Start <= len after the removal.
		_ = e.content.Insert(m.Start, data)
		e.commit(Edit{Offset: m.Start, Removed: len(removed), Inserted: len(data)}, m.Start, len(data), removed)
	}
	return matches, nil
}

// commit records an applied edit: the undo record that reverts it
// (remove undoRemove bytes at undoOffset, then insert undoInsert), the
// changed offsets, and observer notification. Structured record prefixes
// are fixed afterwards as edits of their own.
func (e *Editor) commit(edit Edit, undoOffset, undoRemove int, undoInsert []byte) {
	if edit.Removed == 0 && edit.Inserted == 0 {
		return
	}
	e.history.Push(undoOffset, undoRemove, undoInsert)
	e.markChanged(edit)
	e.notifier.Notify(edit)
	e.clampCursorLength()
	e.applyFixes()
}

func (e *Editor) markChanged(edit Edit) {
	if edit.Delta() != 0 {
		e.changes.Record(edit.Offset, true)
		return
	}
	for i := 0; i < max(edit.Inserted, 1); i++ {
		e.changes.Record(edit.Offset+i, false)
	}
}

// applyFixes rewrites the prefixes of structured records the last edit
// resized. Errors are reported through the error message.
func (e *Editor) applyFixes() {
	if e.fixing || e.records.Len() == 0 {
		return
	}
	e.fixing = true
	defer func() { e.fixing = false }()

	fixes, err := e.records.Fixes(e.content.Chunk)
	for _, fix := range fixes {
		removed := e.content.Remove(fix.Offset, fix.Remove)
		_ = e.content.Insert(fix.Offset, fix.Insert)
		e.commit(Edit{Offset: fix.Offset, Removed: len(removed), Inserted: len(fix.Insert)}, fix.Offset, len(fix.Insert), removed)
	}
	if err != nil {
		e.errorMessage = err.Error()
	}
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverts the last edit together with every edit made within the
// grouping threshold before it.
func (e *Editor) Undo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	_, err := e.history.Undo(history.ApplierFunc(e.applyRecord))
	return err
}

// Redo reapplies the edits reverted by the last Undo.
func (e *Editor) Redo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	_, err := e.history.Redo(history.ApplierFunc(e.applyRecord))
	return err
}

// CanUndo returns true if there is something to undo.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of undo records.
func (e *Editor) UndoCount() int {
	return e.history.UndoCount()
}

// applyRecord replays r against the buffer without recording it and
// returns the record that reverts it. The cursor lands on the edit.
func (e *Editor) applyRecord(r history.Record) (history.Record, error) {
	if r.Offset < 0 || r.Offset > e.content.Len() {
		return history.Record{}, &content.BoundsError{Offset: r.Offset, Length: r.Remove, Size: e.content.Len()}
	}
	removed := e.content.Remove(r.Offset, r.Remove)
	// Cannot fail: r.Offset <= len after the removal.
	_ = e.content.Insert(r.Offset, r.Insert)

	edit := Edit{Offset: r.Offset, Removed: len(removed), Inserted: len(r.Insert)}
	e.markChanged(edit)
	e.notifier.Notify(edit)
	e.moveTo(r.Offset)

	return history.Record{
		Offset:    r.Offset,
		Remove:    len(r.Insert),
		Insert:    removed,
		Timestamp: r.Timestamp,
	}, nil
}
