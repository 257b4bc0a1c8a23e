package cursor

import "fmt"

// Cursor is an offset with a signed, direction-carrying length.
type Cursor struct {
	offset int
	length int
}

// New creates a cursor. Negative offsets clamp to 0.
func New(offset, length int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{offset: offset, length: length}
}

// Offset returns the first selected position.
func (c Cursor) Offset() int {
	if c.length < 0 {
		return c.offset + c.length
	}
	return c.offset
}

// Length returns the number of selected positions.
// A backward cursor includes the position it is anchored at.
func (c Cursor) Length() int {
	if c.length < 0 {
		return -c.length + 1
	}
	return c.length
}

// RealOffset returns the stored anchor offset.
func (c Cursor) RealOffset() int {
	return c.offset
}

// RealLength returns the stored signed length.
func (c Cursor) RealLength() int {
	return c.length
}

// End returns the exclusive end of the selection.
func (c Cursor) End() int {
	return c.Offset() + c.Length()
}

// IsBackward reports whether the selection was grown toward offset 0.
func (c Cursor) IsBackward() bool {
	return c.length < 0
}

// Span returns the selection as a forward range.
func (c Cursor) Span() Span {
	return Span{Start: c.Offset(), End: c.End()}
}

// SetOffset stores a new anchor offset. Negative offsets clamp to 0.
func (c *Cursor) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	c.offset = offset
}

// SetLength stores a new signed length.
func (c *Cursor) SetLength(length int) {
	c.length = length
}

// Reset moves the cursor to offset with the given length.
func (c *Cursor) Reset(offset, length int) {
	c.SetOffset(offset)
	c.length = length
}

// Grown returns the stored length after growing by one unit.
// Growing a one-unit backward cursor turns it forward.
func (c Cursor) Grown() int {
	if c.length == -1 {
		return 1
	}
	return c.length + 1
}

// Shrunk returns the stored length after shrinking by one unit.
// Shrinking a one-unit forward cursor turns it backward.
func (c Cursor) Shrunk() int {
	if c.length == 1 {
		return -1
	}
	return c.length - 1
}

// GrownBy returns the stored length after growing by n units, skipping
// over the zero length a sign change would pass through.
func (c Cursor) GrownBy(n int) int {
	l := c.length + n
	if c.length < 0 && l >= 0 {
		l++
	}
	return l
}

// ShrunkBy returns the stored length after shrinking by n units, skipping
// over the zero length a sign change would pass through.
func (c Cursor) ShrunkBy(n int) int {
	l := c.length - n
	if c.length > 0 && l < 0 {
		l--
	}
	return l
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d, %d)", c.offset, c.length)
}
