// Package search implements byte pattern search.
//
// Patterns use regexp syntax over bytes, extended with two escapes that
// are convenient when hunting through binary data:
//
//   - \b followed by up to eight of 0, 1 or . (a wildcard bit) matches
//     every byte value with that bit pattern.
//   - \xH. and \x.H match any byte with the given high or low nibble.
//
// Translate rewrites the extensions into character classes. Compile turns
// the result into a Pattern whose FindAll reports non-overlapping matches
// as byte offsets. NthAfter and NthBefore implement cyclic find next and
// find previous over a match list.
package search
