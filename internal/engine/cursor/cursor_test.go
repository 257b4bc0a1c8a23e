package cursor

import "testing"

func TestCursorViews(t *testing.T) {
	tests := []struct {
		name           string
		offset, length int
		wantOffset     int
		wantLength     int
	}{
		{"single byte", 10, 1, 10, 1},
		{"forward", 10, 4, 10, 4},
		{"backward one", 10, -1, 9, 2},
		{"backward", 10, -3, 7, 4},
		{"empty", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.offset, tt.length)
			if c.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", c.Offset(), tt.wantOffset)
			}
			if c.Length() != tt.wantLength {
				t.Errorf("Length() = %d, want %d", c.Length(), tt.wantLength)
			}
			if c.RealOffset() != tt.offset || c.RealLength() != tt.length {
				t.Errorf("real = (%d, %d), want (%d, %d)", c.RealOffset(), c.RealLength(), tt.offset, tt.length)
			}
			if c.End() != tt.wantOffset+tt.wantLength {
				t.Errorf("End() = %d, want %d", c.End(), tt.wantOffset+tt.wantLength)
			}
		})
	}
}

func TestNewCursorNegative(t *testing.T) {
	c := New(-5, 1)
	if c.RealOffset() != 0 {
		t.Errorf("negative offset should clamp to 0, got %d", c.RealOffset())
	}
}

func TestCursorGrowShrink(t *testing.T) {
	tests := []struct {
		length int
		grown  int
		shrunk int
	}{
		{1, 2, -1},
		{-1, 1, -2},
		{3, 4, 2},
		{-3, -2, -4},
	}

	for _, tt := range tests {
		c := New(5, tt.length)
		if got := c.Grown(); got != tt.grown {
			t.Errorf("Grown() from %d = %d, want %d", tt.length, got, tt.grown)
		}
		if got := c.Shrunk(); got != tt.shrunk {
			t.Errorf("Shrunk() from %d = %d, want %d", tt.length, got, tt.shrunk)
		}
	}
}

func TestCursorGrowByLine(t *testing.T) {
	c := New(20, -4)
	if got := c.GrownBy(16); got != 13 {
		t.Errorf("GrownBy(16) = %d, want 13", got)
	}
	c = New(20, 4)
	if got := c.ShrunkBy(16); got != -13 {
		t.Errorf("ShrunkBy(16) = %d, want -13", got)
	}
	if got := c.GrownBy(16); got != 20 {
		t.Errorf("GrownBy(16) = %d, want 20", got)
	}
}

func TestSpan(t *testing.T) {
	s := NewSpan(4, 3)
	if s.Len() != 3 || s.End != 7 {
		t.Fatalf("unexpected span %v", s)
	}
	if !s.Contains(4) || !s.Contains(6) || s.Contains(7) {
		t.Error("Contains mismatch")
	}
	if !s.Overlaps(Span{6, 9}) || s.Overlaps(Span{7, 9}) {
		t.Error("Overlaps mismatch")
	}
	if got := s.Clamp(5); got != (Span{4, 5}) {
		t.Errorf("Clamp(5) = %v", got)
	}
	if got := New(10, -2).Span(); got != (Span{8, 11}) {
		t.Errorf("backward Span() = %v", got)
	}
}

func TestTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		edit   Edit
		want   int
	}{
		{"before edit", 2, Edit{Offset: 5, Inserted: 3}, 2},
		{"at insert", 5, Edit{Offset: 5, Inserted: 3}, 8},
		{"after delete", 10, Edit{Offset: 2, Removed: 4}, 6},
		{"inside delete", 4, Edit{Offset: 2, Removed: 4}, 2},
		{"after replace", 10, Edit{Offset: 2, Removed: 2, Inserted: 5}, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.edit); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTransformSpan(t *testing.T) {
	s := Span{Start: 10, End: 20}
	tests := []struct {
		name string
		edit Edit
		want Span
	}{
		{"insert before", Edit{Offset: 2, Inserted: 3}, Span{13, 23}},
		{"insert at start", Edit{Offset: 10, Inserted: 3}, Span{13, 23}},
		{"insert inside", Edit{Offset: 15, Inserted: 3}, Span{10, 23}},
		{"insert at end", Edit{Offset: 20, Inserted: 3}, Span{10, 20}},
		{"remove inside", Edit{Offset: 12, Removed: 4}, Span{10, 16}},
		{"remove past end", Edit{Offset: 18, Removed: 5}, Span{10, 18}},
		{"remove head", Edit{Offset: 8, Removed: 4}, Span{8, 16}},
		{"remove before", Edit{Offset: 0, Removed: 5}, Span{5, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformSpan(s, tt.edit); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
