package content

import "github.com/dshills/hexstorm/internal/engine/format"

// ReplaceDigit rewrites one digit of the byte at offset as written in
// radix. position 0 is the least significant digit. It returns the old
// byte, or a *DigitError if value is not a digit of radix or the new
// digits spell a number above 255 (for example 3 in the hundreds place
// of a decimal byte).
func (c *Content) ReplaceDigit(offset, position int, value uint8, radix int) (byte, error) {
	b, ok := c.Byte(offset)
	if !ok {
		return 0, c.boundsError(offset, 1)
	}
	if radix < 2 || int(value) >= radix {
		return 0, &DigitError{Digit: value, Radix: radix}
	}

	steps := format.DigitCount(radix)
	if position < 0 || position >= steps {
		return 0, &DigitError{Digit: value, Radix: radix}
	}

	digits := make([]int, steps)
	rest := int(b)
	for i := range digits {
		digits[i] = rest % radix
		rest /= radix
	}
	digits[position] = int(value)

	n := 0
	for i := steps - 1; i >= 0; i-- {
		n = n*radix + digits[i]
	}
	if n > 0xff {
		return 0, &DigitError{Digit: value, Radix: radix}
	}

	c.data[offset] = byte(n)
	return b, nil
}
