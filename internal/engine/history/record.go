package history

import (
	"bytes"
	"fmt"
	"time"
)

// Record is a reversible edit: remove Remove bytes at Offset, then insert
// Insert at Offset. The undo stack holds the records that revert user
// edits; the redo stack holds their inverses.
type Record struct {
	Offset    int
	Remove    int
	Insert    []byte
	Timestamp time.Time
}

// IsInsert returns true for a record that only inserts bytes.
func (r Record) IsInsert() bool {
	return r.Remove == 0 && len(r.Insert) > 0
}

// IsRemove returns true for a record that only removes bytes.
func (r Record) IsRemove() bool {
	return r.Remove > 0 && len(r.Insert) == 0
}

// IsOverwrite returns true for a record that both removes and inserts.
func (r Record) IsOverwrite() bool {
	return r.Remove > 0 && len(r.Insert) > 0
}

// IsNoop returns true for a record that changes nothing.
func (r Record) IsNoop() bool {
	return r.Remove == 0 && len(r.Insert) == 0
}

// BytesDelta returns the change in buffer length when the record is applied.
func (r Record) BytesDelta() int {
	return len(r.Insert) - r.Remove
}

// Equal reports whether two records describe the same edit, ignoring time.
func (r Record) Equal(other Record) bool {
	return r.Offset == other.Offset && r.Remove == other.Remove && bytes.Equal(r.Insert, other.Insert)
}

// String returns a short description for logs.
func (r Record) String() string {
	switch {
	case r.IsInsert():
		return fmt.Sprintf("insert %d bytes at %d", len(r.Insert), r.Offset)
	case r.IsRemove():
		return fmt.Sprintf("remove %d bytes at %d", r.Remove, r.Offset)
	default:
		return fmt.Sprintf("replace %d bytes with %d at %d", r.Remove, len(r.Insert), r.Offset)
	}
}

// Applier applies a record to a buffer and returns the record that
// reverses it. The inverse must carry the original timestamp.
type Applier interface {
	Apply(r Record) (Record, error)
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(r Record) (Record, error)

// Apply calls f(r).
func (f ApplierFunc) Apply(r Record) (Record, error) {
	return f(r)
}
