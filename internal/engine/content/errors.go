package content

import (
	"errors"
	"fmt"
)

// Errors returned by content operations.
var (
	// ErrOutOfBounds indicates an offset or length outside the buffer.
	ErrOutOfBounds = errors.New("offset out of bounds")

	// ErrInvalidDigit indicates a digit that is not valid for the radix,
	// or a digit edit that would push a byte past 255.
	ErrInvalidDigit = errors.New("invalid digit")
)

// BoundsError reports the offending offset and length of a rejected call.
type BoundsError struct {
	Offset int
	Length int
	Size   int
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("offset %d (length %d) out of bounds for %d bytes", e.Offset, e.Length, e.Size)
}

// Is matches ErrOutOfBounds.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// DigitError reports a rejected digit edit.
type DigitError struct {
	Digit uint8
	Radix int
}

// Error implements the error interface.
func (e *DigitError) Error() string {
	return fmt.Sprintf("invalid digit %d for radix %d", e.Digit, e.Radix)
}

// Is matches ErrInvalidDigit.
func (e *DigitError) Is(target error) bool {
	return target == ErrInvalidDigit
}
