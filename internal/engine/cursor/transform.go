package cursor

// Edit describes a splice: Removed bytes at Offset were replaced by
// Inserted bytes.
type Edit struct {
	Offset   int
	Removed  int
	Inserted int
}

// Delta returns the change in buffer length caused by the edit.
func (e Edit) Delta() int {
	return e.Inserted - e.Removed
}

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - Offsets before the edit are unchanged.
//   - Offsets at or after the end of the removed range shift by the delta.
//   - Offsets inside the removed range move to the edit offset.
func TransformOffset(offset int, edit Edit) int {
	if offset < edit.Offset {
		return offset
	}
	if offset >= edit.Offset+edit.Removed {
		return offset + edit.Delta()
	}
	return edit.Offset
}

// TransformSpan updates a span after an edit.
//
// An edit that ends at or before the span start moves the span. An edit
// starting at or after the span end leaves it alone. An edit starting
// inside the span resizes it, losing only the removed bytes that were
// inside it. An edit that starts before the span and runs into it cuts
// the span's head off.
func TransformSpan(s Span, edit Edit) Span {
	switch {
	case edit.Offset+edit.Removed <= s.Start:
		return Span{Start: s.Start + edit.Delta(), End: s.End + edit.Delta()}
	case edit.Offset >= s.End:
		return s
	case edit.Offset >= s.Start:
		removed := edit.Removed
		if edit.Offset+removed > s.End {
			removed = s.End - edit.Offset
		}
		return Span{Start: s.Start, End: s.End - removed + edit.Inserted}
	default:
		start := edit.Offset + edit.Inserted
		end := TransformOffset(s.End, edit)
		if end < start {
			end = start
		}
		return Span{Start: start, End: end}
	}
}
