package content

import (
	"bytes"
	"io"

	"github.com/dshills/hexstorm/internal/engine/search"
)

// Content is a growable byte buffer.
//
// Writes that name an offset outside the buffer fail with a *BoundsError
// and leave the buffer untouched. Reads clamp to the buffer instead.
type Content struct {
	data []byte
}

// New creates a content buffer holding a copy of data.
func New(data []byte) *Content {
	return &Content{data: bytes.Clone(data)}
}

// NewFromReader creates a content buffer from the whole of r.
func NewFromReader(r io.Reader) (*Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Content{data: data}, nil
}

// Len returns the buffer length in bytes.
func (c *Content) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the buffer holds no bytes.
func (c *Content) IsEmpty() bool {
	return len(c.data) == 0
}

// Bytes returns a copy of the whole buffer.
func (c *Content) Bytes() []byte {
	return bytes.Clone(c.data)
}

// WriteTo writes the buffer to w.
func (c *Content) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.data)
	return int64(n), err
}

// Reset replaces the buffer with a copy of data.
func (c *Content) Reset(data []byte) {
	c.data = bytes.Clone(data)
}

// Clear empties the buffer.
func (c *Content) Clear() {
	c.data = c.data[:0]
}

// Byte returns the byte at offset.
func (c *Content) Byte(offset int) (byte, bool) {
	if offset < 0 || offset >= len(c.data) {
		return 0, false
	}
	return c.data[offset], true
}

// SetByte stores b at offset and returns the previous value.
func (c *Content) SetByte(offset int, b byte) (byte, error) {
	if offset < 0 || offset >= len(c.data) {
		return 0, c.boundsError(offset, 1)
	}
	old := c.data[offset]
	c.data[offset] = b
	return old, nil
}

// Chunk returns a copy of up to length bytes starting at offset.
// Out of range requests return fewer bytes, possibly none.
func (c *Content) Chunk(offset, length int) []byte {
	if offset < 0 {
		length += offset
		offset = 0
	}
	if length <= 0 || offset >= len(c.data) {
		return []byte{}
	}
	end := min(offset+length, len(c.data))
	return bytes.Clone(c.data[offset:end])
}

// Insert splices b in before offset. offset may equal Len.
func (c *Content) Insert(offset int, b []byte) error {
	if offset < 0 || offset > len(c.data) {
		return c.boundsError(offset, len(b))
	}
	if len(b) == 0 {
		return nil
	}
	c.data = append(c.data[:offset], append(bytes.Clone(b), c.data[offset:]...)...)
	return nil
}

// Remove deletes up to length bytes starting at offset and returns what
// was removed. Requests past the end are clamped, so Remove never fails.
func (c *Content) Remove(offset, length int) []byte {
	if offset < 0 || offset >= len(c.data) || length <= 0 {
		return []byte{}
	}
	end := min(offset+length, len(c.data))
	removed := bytes.Clone(c.data[offset:end])
	c.data = append(c.data[:offset], c.data[end:]...)
	return removed
}

// Overwrite replaces len(b) bytes at offset with b and returns the bytes
// that were replaced. Writing past the end grows the buffer.
func (c *Content) Overwrite(offset int, b []byte) ([]byte, error) {
	if offset < 0 || offset > len(c.data) {
		return nil, c.boundsError(offset, len(b))
	}
	removed := c.Remove(offset, len(b))
	// Cannot fail: offset <= len after the removal.
	_ = c.Insert(offset, b)
	return removed, nil
}

// FindAll returns every non-overlapping match of pattern in ascending
// order. The pattern syntax is described in package search.
func (c *Content) FindAll(pattern string) ([]search.Match, error) {
	p, err := search.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.FindAll(c.data), nil
}

func (c *Content) boundsError(offset, length int) error {
	return &BoundsError{Offset: offset, Length: length, Size: len(c.data)}
}
