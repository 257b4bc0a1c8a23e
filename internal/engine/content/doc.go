// Package content holds the editor's byte buffer and its mutation
// primitives.
//
// Every write that names an offset checks it against the buffer first
// and returns a *BoundsError instead of growing, panicking or applying
// part of the change. Chunk and Remove are the exceptions: they clamp,
// so reading or deleting past the end simply yields fewer bytes.
//
// Mutations return whatever the caller needs to undo them: the removed
// bytes, the bytes replaced by an overwrite or mask, the pre-increment
// word, the old byte of a digit edit.
//
//	c := content.New([]byte{0x00, 0xff})
//	old, _ := c.Increment(1, 2) // c = 01 00, old = 00 ff
//	c.ApplyMask(0, []byte{0xff, 0xff}, content.Xor)
//
// Content is not safe for concurrent use.
package content
