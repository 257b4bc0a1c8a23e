package search

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxBits is the longest binary literal accepted after \b.
const maxBits = 8

const hexDigits = "0123456789ABCDEF"

// Translate rewrites a byte pattern into syntax for the regexp package.
//
//	\b1.0     any byte whose low three bits are 1?0, as [\x04\x06]
//	\x4.      any byte with high nibble 4, as [\x40\x41...\x4F]
//	\x.4      any byte with low nibble 4, as [\x04\x14...\xF4]
//
// A \b literal holds one to eight bits, most significant first; fewer than
// eight bits describe a smaller number and must end the pattern. Every
// byte the pattern names, through an escape or a literal UTF-8 character,
// is written in the form Pattern matches against (see byteRune), so a
// character matches the bytes it is encoded as. Other escapes are passed
// through untouched.
func Translate(pattern string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(pattern))

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c >= utf8.RuneSelf:
			_, size := utf8.DecodeRuneInString(pattern[i:])
			writeLiteral(&sb, pattern[i:i+size], inClass)
			i += size - 1
			continue
		case c == '[' && !inClass:
			inClass = true
			sb.WriteByte(c)
			// A leading ] or ^] is a literal.
			if strings.HasPrefix(pattern[i+1:], "^") {
				sb.WriteByte('^')
				i++
			}
			if strings.HasPrefix(pattern[i+1:], "]") {
				sb.WriteByte(']')
				i++
			}
			continue
		case c == '[' && inClass && strings.HasPrefix(pattern[i:], "[:"):
			if j := strings.Index(pattern[i:], ":]"); j > 0 {
				sb.WriteString(pattern[i : i+j+2])
				i += j + 1
				continue
			}
		case c == ']' && inClass:
			inClass = false
		}
		if c != '\\' || i+1 >= len(pattern) {
			sb.WriteByte(c)
			continue
		}

		switch pattern[i+1] {
		case 'b':
			n, class, err := translateBinary(pattern[i:])
			if err != nil {
				return "", err
			}
			sb.WriteString(class)
			i += n - 1
		case 'x':
			n, class, err := translateHex(pattern[i:])
			if err != nil {
				return "", err
			}
			sb.WriteString(class)
			i += n - 1
		default:
			if pattern[i+1] >= utf8.RuneSelf {
				// An escaped character is the character itself.
				continue
			}
			sb.WriteByte(c)
			sb.WriteByte(pattern[i+1])
			i++
		}
	}

	return sb.String(), nil
}

// writeLiteral writes the UTF-8 bytes of one character. Outside a class
// the bytes are grouped so a following quantifier repeats the character.
func writeLiteral(sb *strings.Builder, char string, inClass bool) {
	group := !inClass && len(char) > 1
	if group {
		sb.WriteString("(?:")
	}
	for i := 0; i < len(char); i++ {
		writeByteRune(sb, char[i])
	}
	if group {
		sb.WriteByte(')')
	}
}

// translateBinary expands a \b literal at the start of s. It returns the
// number of pattern bytes consumed and the replacement class.
func translateBinary(s string) (int, string, error) {
	bits := s[2:]
	n := 0
	for n < len(bits) && n < maxBits && isBitChar(bits[n]) {
		n++
	}
	if n == 0 {
		return 0, "", &PatternError{Fragment: s[:min(len(s), 3)], Err: ErrInvalidBinary}
	}
	// A short literal must end the pattern; anything after it within the
	// eight-bit window is a malformed bit.
	if n < maxBits && n < len(bits) {
		return 0, "", &PatternError{Fragment: s[:n+3], Err: ErrInvalidBinary}
	}

	base := 0
	var wild []int
	for i := 0; i < n; i++ {
		base <<= 1
		switch bits[i] {
		case '1':
			base |= 1
		case '.':
			wild = append(wild, n-1-i)
		}
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for state := 0; state < 1<<len(wild); state++ {
		v := base
		for j := range wild {
			if state&(1<<j) != 0 {
				v |= 1 << wild[len(wild)-1-j]
			}
		}
		writeByteRune(&sb, byte(v))
	}
	sb.WriteByte(']')

	return n + 2, sb.String(), nil
}

// translateHex rewrites a \x escape at the start of s: a fixed byte,
// \x{NN}, or a byte with one wildcard nibble.
func translateHex(s string) (int, string, error) {
	if strings.HasPrefix(s, `\x{`) {
		if end := strings.IndexByte(s, '}'); end > 3 {
			if v, err := strconv.ParseUint(s[3:end], 16, 8); err == nil {
				var sb strings.Builder
				writeByteRune(&sb, byte(v))
				return end + 1, sb.String(), nil
			}
		}
		return 2, s[:2], nil
	}
	if len(s) < 4 {
		if strings.HasPrefix(s, `\x.`) {
			return 0, "", &PatternError{Fragment: s, Err: ErrInvalidHexWildcard}
		}
		return 2, s[:2], nil
	}

	hi, lo := s[2], s[3]
	var sb strings.Builder
	switch {
	case hi == '.' && lo == '.':
		return 0, "", &PatternError{Fragment: s[:4], Err: ErrInvalidHexWildcard}
	case isHexChar(hi) && lo == '.':
		sb.WriteByte('[')
		for i := byte(0); i < 16; i++ {
			writeByteRune(&sb, hexValue(hi)<<4|i)
		}
		sb.WriteByte(']')
		return 4, sb.String(), nil
	case hi == '.' && isHexChar(lo):
		sb.WriteByte('[')
		for i := byte(0); i < 16; i++ {
			writeByteRune(&sb, i<<4|hexValue(lo))
		}
		sb.WriteByte(']')
		return 4, sb.String(), nil
	case hi == '.':
		return 0, "", &PatternError{Fragment: s[:4], Err: ErrInvalidHexWildcard}
	case isHexChar(hi) && isHexChar(lo):
		writeByteRune(&sb, hexValue(hi)<<4|hexValue(lo))
		return 4, sb.String(), nil
	default:
		return 2, s[:2], nil
	}
}

// EscapeBytes returns a pattern matching data literally.
func EscapeBytes(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 4)
	for _, b := range data {
		writeHexEscape(&sb, b)
	}
	return sb.String()
}

// writeHexEscape writes b as a \xNN pattern escape.
func writeHexEscape(sb *strings.Builder, b byte) {
	sb.WriteString(`\x`)
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0x0f])
}

// writeByteRune writes the regexp escape matching byte b in the text
// Pattern searches.
func writeByteRune(sb *strings.Builder, b byte) {
	if b < utf8.RuneSelf {
		writeHexEscape(sb, b)
		return
	}
	fmt.Fprintf(sb, `\x{%X}`, byteRune(b))
}

func isBitChar(c byte) bool {
	return c == '0' || c == '1' || c == '.'
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
