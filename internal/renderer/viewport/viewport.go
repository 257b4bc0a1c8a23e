// Package viewport pages a byte address space into a fixed window of rows.
package viewport

// Viewport is the visible window: height rows of width bytes, starting at
// offset. The offset is always a multiple of width.
type Viewport struct {
	offset int
	width  int
	height int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{width: width, height: height}
}

// Width returns the number of bytes per row.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the number of rows.
func (v *Viewport) Height() int {
	return v.height
}

// Offset returns the first visible byte.
func (v *Viewport) Offset() int {
	return v.offset
}

// Capacity returns the number of bytes the window shows.
func (v *Viewport) Capacity() int {
	return v.width * v.height
}

// End returns the offset just past the window.
func (v *Viewport) End() int {
	return v.offset + v.Capacity()
}

// Contains reports whether offset lies inside the window.
func (v *Viewport) Contains(offset int) bool {
	return offset >= v.offset && offset < v.End()
}

// Resize updates the window size and realigns the offset to the start of
// its row under the new width.
// Width and height are clamped to a minimum of 1 to prevent underflow.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	v.offset = (v.offset / width) * width
}

// SetOffset moves the window, aligning offset down to a row start.
func (v *Viewport) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	v.offset = (offset / v.width) * v.width
}

// RowOf returns the window row holding offset, which may be negative or
// past the last row when offset is outside the window.
func (v *Viewport) RowOf(offset int) int {
	return floorDiv(offset-v.offset, v.width)
}

// RowStart returns the offset of the first byte on window row.
func (v *Viewport) RowStart(row int) int {
	return v.offset + row*v.width
}

// VisibleRange returns the window as [start, end) clamped to size bytes.
func (v *Viewport) VisibleRange(size int) (start, end int) {
	start = min(v.offset, size)
	end = min(v.End(), size)
	return start, end
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
