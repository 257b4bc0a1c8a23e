package cursor

import "fmt"

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span covering length bytes from start.
func NewSpan(start, length int) Span {
	return Span{Start: start, End: start + length}
}

// Len returns the number of bytes in the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Clamp returns the span limited to [0, max).
func (s Span) Clamp(max int) Span {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > max {
		s.End = max
	}
	if s.Start > s.End {
		s.Start = s.End
	}
	return s
}

// String returns a string representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
