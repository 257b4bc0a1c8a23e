package core

import "testing"

func TestAttributeHas(t *testing.T) {
	a := AttrBold | AttrReverse
	if !a.Has(AttrBold) || !a.Has(AttrReverse) {
		t.Error("expected bold and reverse")
	}
	if a.Has(AttrUnderline) {
		t.Error("did not expect underline")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"cyan", ColorCyan, false},
		{" Default ", ColorDefault, false},
		{"grey", ColorGray, false},
		{"#ff8000", ColorFromRGB(255, 128, 0), false},
		{"#FFF", ColorFromRGB(255, 255, 255), false},
		{"ff8000", Color{}, true},
		{"#zzzzzz", Color{}, true},
		{"chartreuse", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, "default"},
		{ColorFromIndex(3), "palette(3)"},
		{ColorFromRGB(1, 2, 255), "#0102ff"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorRed).Reverse().Bold()
	if s.Foreground != ColorRed {
		t.Errorf("Foreground = %v", s.Foreground)
	}
	if !s.Attributes.Has(AttrReverse) || !s.Attributes.Has(AttrBold) {
		t.Errorf("Attributes = %b", s.Attributes)
	}
	if !s.Background.IsDefault() {
		t.Error("background should stay default")
	}
}

func TestStringWidthAndTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"日本語", 4, "日本"},
		{"日本語", 3, "日"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if StringWidth(got) > tt.width {
			t.Errorf("Truncate(%q, %d) is %d columns wide", tt.in, tt.width, StringWidth(got))
		}
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", r.Width(), r.Height())
	}
	if !r.Contains(2, 3) || !r.Contains(5, 7) {
		t.Error("corners should be inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 8) {
		t.Error("exclusive edges should be outside")
	}
	if !(ScreenRect{Top: 1, Bottom: 1, Right: 4}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
}
