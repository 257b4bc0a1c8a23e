package command

import "math"

// Register accumulates the numeric prefix typed before a command. It is
// consumed by the next command that repeats or takes an offset.
type Register struct {
	// Value is the accumulated number.
	Value int

	// Active indicates a number is being accumulated.
	Active bool
}

// Push appends a decimal digit. Returns false if r is not a digit.
func (r *Register) Push(d rune) bool {
	if d < '0' || d > '9' {
		return false
	}
	digit := int(d - '0')
	r.Active = true
	if r.Value > (math.MaxInt-digit)/10 {
		r.Value = math.MaxInt
		return true
	}
	r.Value = r.Value*10 + digit
	return true
}

// Get returns the value and whether one is set, without consuming it.
func (r *Register) Get() (int, bool) {
	return r.Value, r.Active
}

// Fetch returns the value, or def if none was typed, and clears it.
func (r *Register) Fetch(def int) int {
	v := def
	if r.Active {
		v = r.Value
	}
	r.Clear()
	return v
}

// Clear forgets the value.
func (r *Register) Clear() {
	r.Value = 0
	r.Active = false
}
