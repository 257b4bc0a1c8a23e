package tracking

import (
	"fmt"
	"sort"
)

// Change marks an offset touched by an edit.
type Change struct {
	Offset        int
	LengthChanged bool
}

// String returns a short description of the change.
func (c Change) String() string {
	if c.LengthChanged {
		return fmt.Sprintf("%d+", c.Offset)
	}
	return fmt.Sprintf("%d", c.Offset)
}

// Changes is a set of Change values collected between two fetches.
type Changes struct {
	set map[Change]struct{}
}

// NewChanges creates an empty change set.
func NewChanges() *Changes {
	return &Changes{set: make(map[Change]struct{})}
}

// Record adds a change to the set.
func (c *Changes) Record(offset int, lengthChanged bool) {
	c.set[Change{Offset: offset, LengthChanged: lengthChanged}] = struct{}{}
}

// Len returns the number of pending changes.
func (c *Changes) Len() int {
	return len(c.set)
}

// Drain returns the pending changes ordered by offset and empties the set.
func (c *Changes) Drain() []Change {
	out := make([]Change, 0, len(c.set))
	for ch := range c.set {
		out = append(out, ch)
	}
	clear(c.set)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}
		return !out[i].LengthChanged && out[j].LengthChanged
	})
	return out
}

// EarliestReflow returns the smallest offset whose change altered the
// buffer length, without draining.
func (c *Changes) EarliestReflow() (int, bool) {
	found := false
	lowest := 0
	for ch := range c.set {
		if ch.LengthChanged && (!found || ch.Offset < lowest) {
			lowest = ch.Offset
			found = true
		}
	}
	return lowest, found
}
