// Package history provides undo/redo for the byte editor.
//
// # Records
//
// A Record says how to revert an edit: remove Remove bytes at Offset,
// then insert Insert there. Inserting n bytes is reverted by a record
// that removes n bytes; deleting bytes is reverted by a record that puts
// them back. Applying a record yields its inverse, which goes onto the
// opposite stack with the same timestamp.
//
// # Coalescing
//
// Push folds a record into the top of the undo stack when both only
// insert or both only remove and the two are contiguous, so typing or
// deleting a run of bytes becomes one record. Overwrites never fold.
//
// # Temporal grouping
//
// Undo keeps applying records while each is stamped within Threshold of
// the one applied before it, and Redo does the same walking forward in
// time. A burst of edits that did not coalesce still undoes as one step:
//
//	h := history.New()
//	h.Push(0, 1, nil)        // typed a byte at 0
//	h.Push(4, 0, []byte{9})  // deleted a byte at 4
//	n, err := h.Undo(editor) // n == 2 if both happened within 50ms
//
// History is not safe for concurrent use.
package history
