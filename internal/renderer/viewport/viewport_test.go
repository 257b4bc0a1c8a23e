package viewport

import (
	"testing"
)

func TestNewViewport(t *testing.T) {
	v := NewViewport(16, 10)

	if v.Width() != 16 {
		t.Errorf("expected width 16, got %d", v.Width())
	}
	if v.Height() != 10 {
		t.Errorf("expected height 10, got %d", v.Height())
	}
	if v.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", v.Offset())
	}
	if v.Capacity() != 160 {
		t.Errorf("expected capacity 160, got %d", v.Capacity())
	}
}

func TestNewViewportClampsSize(t *testing.T) {
	v := NewViewport(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", v.Width(), v.Height())
	}
}

func TestViewportResizeRealigns(t *testing.T) {
	v := NewViewport(16, 4)
	v.SetOffset(48)
	v.Resize(10, 4)

	if v.Offset() != 40 {
		t.Errorf("expected offset 40, got %d", v.Offset())
	}
	if v.Width() != 10 {
		t.Errorf("expected width 10, got %d", v.Width())
	}
}

func TestViewportSetOffsetAligns(t *testing.T) {
	v := NewViewport(8, 2)
	v.SetOffset(21)
	if v.Offset() != 16 {
		t.Errorf("expected offset 16, got %d", v.Offset())
	}
	v.SetOffset(-4)
	if v.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", v.Offset())
	}
}

func TestViewportFollow(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		position   int
		wantOffset int
		wantDir    ScrollDirection
	}{
		{"visible", 0, 31, 0, ScrollNone},
		{"one row down", 0, 32, 8, ScrollDown},
		{"several rows down", 0, 50, 24, ScrollDown},
		{"one row up", 16, 15, 8, ScrollUp},
		{"to top", 16, 0, 0, ScrollUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(8, 4)
			v.SetOffset(tt.start)
			dir := v.Follow(tt.position)
			if v.Offset() != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, v.Offset())
			}
			if dir != tt.wantDir {
				t.Errorf("expected direction %s, got %s", tt.wantDir, dir)
			}
			if !v.Contains(tt.position) {
				t.Errorf("position %d not visible in [%d, %d)", tt.position, v.Offset(), v.End())
			}
		})
	}
}

func TestViewportScrollRows(t *testing.T) {
	v := NewViewport(8, 4)
	if dir := v.ScrollRows(2); dir != ScrollDown || v.Offset() != 16 {
		t.Errorf("expected down to 16, got %s to %d", dir, v.Offset())
	}
	if dir := v.ScrollRows(-5); dir != ScrollUp || v.Offset() != 0 {
		t.Errorf("expected up to 0, got %s to %d", dir, v.Offset())
	}
	if dir := v.ScrollRows(-1); dir != ScrollNone {
		t.Errorf("expected no scroll, got %s", dir)
	}
}

func TestViewportRows(t *testing.T) {
	v := NewViewport(8, 4)
	v.SetOffset(16)

	if row := v.RowOf(27); row != 1 {
		t.Errorf("expected row 1, got %d", row)
	}
	if row := v.RowOf(15); row != -1 {
		t.Errorf("expected row -1, got %d", row)
	}
	if start := v.RowStart(2); start != 32 {
		t.Errorf("expected row start 32, got %d", start)
	}

	start, end := v.VisibleRange(40)
	if start != 16 || end != 40 {
		t.Errorf("expected [16, 40), got [%d, %d)", start, end)
	}
}
