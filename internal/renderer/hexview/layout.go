package hexview

import "fmt"

// minOffsetDigits is the narrowest offset column, enough for 4 GiB.
const minOffsetDigits = 8

// Layout holds the column positions of one row.
//
//	00000010 48 65 6C 6C  Hell
//	^offset  ^digits      ^human
type Layout struct {
	OffsetWidth int // hex digits in the offset column
	DigitsLeft  int // first column of the digit area
	HumanLeft   int // first column of the human panel
	Ratio       int // columns per byte in the digit area
	BytesPerRow int
}

// offsetDigits returns the offset column width for a buffer of size bytes.
func offsetDigits(size int) int {
	n := len(fmt.Sprintf("%X", max(size, 0)))
	return max(n, minOffsetDigits)
}

// FitBytesPerRow returns the largest row width whose digits and human
// panel fit in width columns. It is at least 1.
func FitBytesPerRow(width, offsetWidth, ratio int) int {
	// offset, a space, ratio columns per byte, a space, one column per byte
	avail := width - offsetWidth - 2
	return max(avail/(ratio+1), 1)
}

// NewLayout computes the columns for the given row width.
func NewLayout(offsetWidth, ratio, bytesPerRow int) Layout {
	digitsLeft := offsetWidth + 1
	return Layout{
		OffsetWidth: offsetWidth,
		DigitsLeft:  digitsLeft,
		HumanLeft:   digitsLeft + bytesPerRow*ratio + 1,
		Ratio:       ratio,
		BytesPerRow: bytesPerRow,
	}
}

// DigitX returns the first column of byte column i.
func (l Layout) DigitX(i int) int {
	return l.DigitsLeft + i*l.Ratio
}

// HumanX returns the human panel column of byte column i.
func (l Layout) HumanX(i int) int {
	return l.HumanLeft + i
}

// Width returns the number of columns a row uses.
func (l Layout) Width() int {
	return l.HumanLeft + l.BytesPerRow
}
