package content

import "fmt"

// MaskOp is a bitwise operation applied by ApplyMask.
type MaskOp uint8

// Mask operations.
const (
	And MaskOp = iota
	Or
	Xor
	Nand
	Nor
)

// String returns the operation name.
func (op MaskOp) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Nand:
		return "nand"
	case Nor:
		return "nor"
	default:
		return fmt.Sprintf("MaskOp(%d)", uint8(op))
	}
}

func (op MaskOp) apply(v, m byte) byte {
	switch op {
	case And:
		return v & m
	case Or:
		return v | m
	case Xor:
		return v ^ m
	case Nand:
		return ^(v & m)
	case Nor:
		return ^(v | m)
	default:
		return v
	}
}

// ApplyMask combines the bytes at offset with mask using op, in place.
// A mask running past the end of the buffer is truncated. It returns the
// bytes as they were before the operation.
func (c *Content) ApplyMask(offset int, mask []byte, op MaskOp) ([]byte, error) {
	if offset < 0 || offset >= len(c.data) {
		return nil, c.boundsError(offset, len(mask))
	}
	end := min(offset+len(mask), len(c.data))
	old := c.Chunk(offset, end-offset)
	for i := offset; i < end; i++ {
		c.data[i] = op.apply(c.data[i], mask[i-offset])
	}
	return old, nil
}

// RepeatMask repeats mask until it covers length bytes.
func RepeatMask(mask []byte, length int) []byte {
	if len(mask) == 0 || length <= 0 {
		return nil
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = mask[i%len(mask)]
	}
	return out
}
