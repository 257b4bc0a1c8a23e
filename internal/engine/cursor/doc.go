// Package cursor provides the byte cursor and span types for the editor.
//
// A Cursor is an offset plus a signed length. The sign records which way
// the selection was grown:
//
//   - Positive length selects [offset, offset+length).
//   - Negative length selects backward; the selection starts at
//     offset+length and includes the byte at offset.
//
// Two views are exposed. Offset and Length always describe the selection
// front to back, which is what renderers and edit operations want.
// RealOffset and RealLength return the stored values, which is what
// incremental grow/shrink needs so that extending left does not flip the
// anchor on every keystroke.
//
// The same type addresses digits inside the selected bytes (the subcursor);
// only the unit of the coordinates differs.
//
// Basic usage:
//
//	c := cursor.New(10, 1)    // byte 10
//	c.SetLength(-3)           // bytes 7..10
//	c.Offset(), c.Length()    // 7, 4
//	c.RealOffset()            // 10
//
// Span is a [Start, End) byte range used for selections, search matches
// and structured record extents. The transform helpers move offsets and
// spans across an edit.
//
// Cursor and Span are plain value types with no internal synchronization.
package cursor
