package viewport

// ScrollDirection is the direction of the last row shift.
type ScrollDirection uint8

const (
	ScrollNone ScrollDirection = iota
	ScrollUp
	ScrollDown
)

// String returns a string representation of the direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	default:
		return "none"
	}
}

// ScrollRows shifts the window by n rows, never before offset 0.
func (v *Viewport) ScrollRows(n int) ScrollDirection {
	before := v.offset
	v.offset += n * v.width
	if v.offset < 0 {
		v.offset = 0
	}
	switch {
	case v.offset > before:
		return ScrollDown
	case v.offset < before:
		return ScrollUp
	default:
		return ScrollNone
	}
}

// Follow slides the window by whole rows until position is visible,
// using the fewest row shifts. It never recenters.
func (v *Viewport) Follow(position int) ScrollDirection {
	dir := ScrollNone
	for position >= v.End() {
		v.offset += v.width
		dir = ScrollDown
	}
	for v.offset > position {
		if v.width > v.offset {
			v.offset = 0
		} else {
			v.offset -= v.width
		}
		dir = ScrollUp
	}
	return dir
}
