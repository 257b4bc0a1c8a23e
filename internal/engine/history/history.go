package history

import (
	"bytes"
	"time"
)

// History holds the undo and redo stacks.
type History struct {
	undoStack []Record
	redoStack []Record

	maxEntries int
	threshold  time.Duration
	now        func() time.Time
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		threshold:  MergeThreshold,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push records how to revert an edit that was just applied: remove
// bytes at offset, then insert insert. It returns true if the record was
// folded into the previous one.
//
// Two inserting records merge when the new bytes sit directly before the
// previous insertion point or at the same point. Two removing records
// merge when the new removal starts where the previous one ends. Mixed
// records never merge. A merge refreshes the timestamp. Every push clears
// the redo stack.
func (h *History) Push(offset, remove int, insert []byte) bool {
	h.redoStack = nil

	rec := Record{Offset: offset, Remove: remove, Insert: bytes.Clone(insert)}
	if rec.IsNoop() {
		return false
	}

	if n := len(h.undoStack); n > 0 {
		top := &h.undoStack[n-1]
		if merge(top, rec) {
			top.Timestamp = h.now()
			return true
		}
	}

	rec.Timestamp = h.now()
	h.undoStack = append(h.undoStack, rec)
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	return false
}

func merge(top *Record, rec Record) bool {
	switch {
	case rec.IsInsert() && top.IsInsert():
		if top.Offset == rec.Offset+len(rec.Insert) {
			top.Insert = append(rec.Insert, top.Insert...)
			top.Offset = rec.Offset
			return true
		}
		if top.Offset == rec.Offset {
			top.Insert = append(top.Insert, rec.Insert...)
			return true
		}
	case rec.IsRemove() && top.IsRemove():
		if top.Offset+top.Remove == rec.Offset {
			top.Remove += rec.Remove
			return true
		}
	}
	return false
}

// Undo applies the newest undo record and every older record stamped
// within the threshold of the one before it. It returns how many records
// were applied, or ErrEmptyStack if none were. If target fails partway,
// the records already applied in the group are reverted.
func (h *History) Undo(target Applier) (int, error) {
	return h.replay(target, &h.undoStack, &h.redoStack, func(prev, next time.Time) time.Duration {
		return prev.Sub(next)
	})
}

// Redo walks the redo stack forward in time, applying every record
// stamped within the threshold of the one before it.
func (h *History) Redo(target Applier) (int, error) {
	return h.replay(target, &h.redoStack, &h.undoStack, func(prev, next time.Time) time.Duration {
		return next.Sub(prev)
	})
}

func (h *History) replay(target Applier, from, to *[]Record, gap func(prev, next time.Time) time.Duration) (int, error) {
	applied := 0
	var prev time.Time
	for len(*from) > 0 {
		rec := (*from)[len(*from)-1]
		if applied > 0 && gap(prev, rec.Timestamp) > h.threshold {
			break
		}
		*from = (*from)[:len(*from)-1]

		inverse, err := target.Apply(rec)
		if err != nil {
			*from = append(*from, rec)
			rollback(target, from, to, applied)
			return 0, err
		}
		*to = append(*to, inverse)
		prev = rec.Timestamp
		applied++
	}

	if applied == 0 {
		return 0, ErrEmptyStack
	}
	return applied, nil
}

// rollback reverts the last n records replay moved from one stack to the
// other, so a failed group leaves the target and both stacks as they were.
// It stops at the first record the target refuses.
func rollback(target Applier, from, to *[]Record, n int) {
	for ; n > 0; n-- {
		inverse := (*to)[len(*to)-1]
		rec, err := target.Apply(inverse)
		if err != nil {
			return
		}
		*to = (*to)[:len(*to)-1]
		*from = append(*from, rec)
	}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo records.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo records.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// PeekUndo returns the next undo record without removing it.
func (h *History) PeekUndo() (Record, bool) {
	if len(h.undoStack) == 0 {
		return Record{}, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the next redo record without removing it.
func (h *History) PeekRedo() (Record, bool) {
	if len(h.redoStack) == 0 {
		return Record{}, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MaxEntries returns the maximum number of undo records.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Threshold returns the temporal grouping window.
func (h *History) Threshold() time.Duration {
	return h.threshold
}
