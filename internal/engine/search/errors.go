package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern translation and compilation.
var (
	// ErrInvalidBinary is returned for a malformed \b binary literal.
	ErrInvalidBinary = errors.New("invalid binary literal")

	// ErrInvalidHexWildcard is returned for a \x escape with no fixed nibble.
	ErrInvalidHexWildcard = errors.New("invalid hex wildcard")

	// ErrInvalidRegex is returned when the translated pattern does not compile.
	ErrInvalidRegex = errors.New("invalid search pattern")
)

// PatternError reports a malformed extended escape in a search pattern.
type PatternError struct {
	// Fragment is the offending piece of the pattern.
	Fragment string

	// Err is ErrInvalidBinary or ErrInvalidHexWildcard.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Fragment)
}

// Unwrap returns the underlying sentinel.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// CompileError wraps a regexp compilation failure.
type CompileError struct {
	// Pattern is the pattern as the user wrote it.
	Pattern string

	// Err is the error from the regexp package.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the regexp error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidRegex.
func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidRegex
}
