package search

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Match is a [Start, End) byte range found by a pattern.
type Match struct {
	Start int
	End   int
}

// Len returns the number of matched bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Pattern is a compiled byte pattern.
//
// The regexp package works on UTF-8 text, so the data is decoded with the
// x-user-defined charmap: ASCII stays ASCII and bytes 0x80 to 0xFF become
// the private use runes U+F780 to U+F7FF. Those runes have no case
// mappings and belong to no character class, so (?i) and \w only ever
// affect ASCII, and every byte is exactly one rune. Translate writes
// patterns in the same terms.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// byteRune returns the rune byte b decodes to in the searched text.
func byteRune(b byte) rune {
	if b < utf8.RuneSelf {
		return rune(b)
	}
	return 0xF700 + rune(b)
}

// Compile translates and compiles a user pattern.
func Compile(pattern string) (*Pattern, error) {
	translated, err := Translate(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return &Pattern{source: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// fixed patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.source
}

// FindAll returns all non-overlapping matches in data in ascending order.
// Overlapping occurrences are not reported: "33" finds one match in "333".
func (p *Pattern) FindAll(data []byte) []Match {
	if len(data) == 0 {
		return nil
	}
	text, err := charmap.XUserDefined.NewDecoder().Bytes(data)
	if err != nil {
		return nil
	}

	locs := p.re.FindAllIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	// Map UTF-8 indices back to byte offsets. Positions are visited in
	// ascending order, so a single forward walk suffices.
	matches := make([]Match, 0, len(locs))
	textPos, bytePos := 0, 0
	advance := func(target int) int {
		for textPos < target {
			_, size := utf8.DecodeRune(text[textPos:])
			textPos += size
			bytePos++
		}
		return bytePos
	}
	for _, loc := range locs {
		start := advance(loc[0])
		end := advance(loc[1])
		matches = append(matches, Match{Start: start, End: end})
	}
	return matches
}
