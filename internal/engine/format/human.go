package format

// Newline is the glyph shown in the text panel for a line feed.
const Newline = '↲'

// HumanRune returns the text panel glyph for b: printable ASCII as
// itself, a line feed as Newline, anything else as '.'.
func HumanRune(b byte) rune {
	switch {
	case b == '\n':
		return Newline
	case b >= 0x20 && b < 0x7f:
		return rune(b)
	default:
		return '.'
	}
}

// Human renders data as text panel glyphs.
func Human(data []byte) string {
	rs := make([]rune, len(data))
	for i, b := range data {
		rs[i] = HumanRune(b)
	}
	return string(rs)
}
