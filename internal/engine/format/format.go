// Package format renders bytes as fixed-width digit strings.
//
// A Formatter is one of Hex, Binary or Decimal. Every formatter emits the
// same number of digits for any byte, so a column of bytes on screen has a
// constant width and the subcursor can address digits by simple arithmetic.
package format

import (
	"fmt"
	"strings"
)

// Kind selects a radix formatter.
type Kind uint8

// Formatter kinds.
const (
	Hex Kind = iota
	Binary
	Decimal
)

// Formatter encodes bytes in a fixed radix.
type Formatter struct {
	kind Kind
}

// New returns the formatter for kind. Unknown kinds fall back to Hex.
func New(kind Kind) Formatter {
	switch kind {
	case Hex, Binary, Decimal:
		return Formatter{kind: kind}
	default:
		return Formatter{kind: Hex}
	}
}

// ParseKind maps a config or command name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hex", "x", "16":
		return Hex, nil
	case "bin", "binary", "b", "2":
		return Binary, nil
	case "dec", "decimal", "d", "10":
		return Decimal, nil
	default:
		return Hex, fmt.Errorf("unknown formatter %q", name)
	}
}

// Kind returns the formatter's kind.
func (f Formatter) Kind() Kind {
	return f.kind
}

// Radix returns 16, 2 or 10.
func (f Formatter) Radix() int {
	switch f.kind {
	case Binary:
		return 2
	case Decimal:
		return 10
	default:
		return 16
	}
}

// DigitsPerByte returns the number of digits needed for any byte value,
// that is ceil(log_radix(256)).
func (f Formatter) DigitsPerByte() int {
	return DigitCount(f.Radix())
}

// DisplayRatio is the number of screen columns one byte occupies,
// its digits plus one separator.
func (f Formatter) DisplayRatio() int {
	return f.DigitsPerByte() + 1
}

// EncodeByte returns the zero-padded digits for b.
func (f Formatter) EncodeByte(b byte) []byte {
	var s string
	switch f.kind {
	case Binary:
		s = fmt.Sprintf("%08b", b)
	case Decimal:
		s = fmt.Sprintf("%03d", b)
	default:
		s = fmt.Sprintf("%02X", b)
	}
	return []byte(s)
}

// Encode renders data with a single space between bytes.
func (f Formatter) Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * f.DisplayRatio())
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(f.EncodeByte(b))
	}
	return sb.String()
}

// Next returns the formatter that follows f in the toggle cycle
// Binary, Hex, Decimal.
func (f Formatter) Next() Formatter {
	switch f.kind {
	case Binary:
		return Formatter{kind: Hex}
	case Hex:
		return Formatter{kind: Decimal}
	default:
		return Formatter{kind: Binary}
	}
}

// String returns the short name used in config files and the status line.
func (f Formatter) String() string {
	return f.kind.String()
}

// String returns the kind's short name.
func (k Kind) String() string {
	switch k {
	case Binary:
		return "bin"
	case Decimal:
		return "dec"
	default:
		return "hex"
	}
}

// DigitCount returns ceil(log_radix(256)) for radix >= 2.
func DigitCount(radix int) int {
	if radix < 2 {
		return 0
	}
	n := 0
	for v := 1; v < 256; v *= radix {
		n++
	}
	return n
}

// DigitValue converts a typed digit to its value in radix.
func DigitValue(r rune, radix int) (uint8, bool) {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return 0, false
	}
	if v >= radix {
		return 0, false
	}
	return uint8(v), true
}
