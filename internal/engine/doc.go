// Package engine provides the byte editing core of hexstorm.
//
// The Editor type is the facade over the sub-packages:
//
//   - content: the byte buffer and its mutation primitives
//   - cursor: the direction-carrying cursor and span arithmetic
//   - format: hex, binary and decimal byte formatters
//   - search: the byte pattern language and match navigation
//   - history: undo/redo with push-time merging and temporal grouping
//   - tracking: changed-offset collection and edit observers
//   - structured: length-prefixed records kept in step with edits
//
// # Addressing
//
// The cursor is an anchor plus a signed length. A negative length selects
// backward from the anchor and includes the anchor byte, so
// CursorOffset/CursorLength always describe a forward range while
// CursorRealOffset/CursorRealLength expose the stored values. The
// subcursor addresses one digit of the selection as the active formatter
// writes it, counted from the most significant digit of the first byte.
//
// # Undo
//
// Every mutation pushes the record that reverts it. Contiguous inserts,
// and contiguous removals, merge into one record. Undo and Redo replay
// records until they reach one stamped more than the grouping threshold
// (50ms by default) away from the previous one:
//
//	e := engine.New(engine.WithContent([]byte("AB")))
//	e.InsertBytes(2, []byte("C"))
//	e.InsertBytes(3, []byte("D"))
//	e.Undo() // "AB"
//
// # Concurrency
//
// Editor holds no locks. It must be owned by one goroutine; the
// application serializes commands through a single queue.
package engine
