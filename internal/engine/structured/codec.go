package structured

import (
	"errors"
	"fmt"
)

// Errors returned by codecs and the registry.
var (
	// ErrDataTooLong indicates a length that does not fit in the prefix.
	ErrDataTooLong = errors.New("data too long for prefix")

	// ErrPrefixTruncated indicates the buffer ends inside a prefix.
	ErrPrefixTruncated = errors.New("length prefix truncated")

	// ErrOverlap indicates a record that would overlap an existing one.
	ErrOverlap = errors.New("record overlaps an existing record")
)

// Codec reads and writes a length prefix.
type Codec interface {
	// Name identifies the codec in messages and commands.
	Name() string

	// Decode reads a prefix from the start of data and returns the
	// payload length and the prefix width in bytes.
	Decode(data []byte) (length uint64, width int, err error)

	// Encode returns the prefix for a payload of length bytes.
	Encode(length uint64) ([]byte, error)
}

// BigEndian is a fixed-width big-endian length prefix.
type BigEndian struct {
	Width int
}

// Name implements Codec.
func (c BigEndian) Name() string {
	return fmt.Sprintf("be%d", c.Width)
}

// Decode implements Codec.
func (c BigEndian) Decode(data []byte) (uint64, int, error) {
	if c.Width < 1 || len(data) < c.Width {
		return 0, 0, ErrPrefixTruncated
	}
	var n uint64
	for _, b := range data[:c.Width] {
		n = n<<8 | uint64(b)
	}
	return n, c.Width, nil
}

// Encode implements Codec.
func (c BigEndian) Encode(length uint64) ([]byte, error) {
	if !fits(length, c.Width) {
		return nil, ErrDataTooLong
	}
	out := make([]byte, c.Width)
	for i := c.Width - 1; i >= 0; i-- {
		out[i] = byte(length)
		length >>= 8
	}
	return out, nil
}

// LittleEndian is a fixed-width little-endian length prefix.
type LittleEndian struct {
	Width int
}

// Name implements Codec.
func (c LittleEndian) Name() string {
	return fmt.Sprintf("le%d", c.Width)
}

// Decode implements Codec.
func (c LittleEndian) Decode(data []byte) (uint64, int, error) {
	if c.Width < 1 || len(data) < c.Width {
		return 0, 0, ErrPrefixTruncated
	}
	var n uint64
	for i := c.Width - 1; i >= 0; i-- {
		n = n<<8 | uint64(data[i])
	}
	return n, c.Width, nil
}

// Encode implements Codec.
func (c LittleEndian) Encode(length uint64) ([]byte, error) {
	if !fits(length, c.Width) {
		return nil, ErrDataTooLong
	}
	out := make([]byte, c.Width)
	for i := range out {
		out[i] = byte(length)
		length >>= 8
	}
	return out, nil
}

func fits(length uint64, width int) bool {
	if width < 1 {
		return false
	}
	if width >= 8 {
		return true
	}
	return length < 1<<(8*uint(width))
}

// VarInt is a variable-width prefix: 7 bits per byte, most significant
// group first, high bit set on every byte except the last.
type VarInt struct{}

// maxVarIntWidth is enough for any uint64.
const maxVarIntWidth = 10

// Name implements Codec.
func (VarInt) Name() string {
	return "var"
}

// Decode implements Codec.
func (VarInt) Decode(data []byte) (uint64, int, error) {
	var n uint64
	for i, b := range data {
		if i == maxVarIntWidth {
			break
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n, i + 1, nil
		}
	}
	return 0, 0, ErrPrefixTruncated
}

// Encode implements Codec.
func (VarInt) Encode(length uint64) ([]byte, error) {
	out := []byte{byte(length & 0x7f)}
	length >>= 7
	for length > 0 {
		out = append(out, byte(length&0x7f)|0x80)
		length >>= 7
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, nil
}

// ParseCodec maps a codec name such as "be2", "le4" or "var" to a Codec.
func ParseCodec(name string) (Codec, error) {
	if name == "var" {
		return VarInt{}, nil
	}
	var width int
	switch {
	case len(name) > 2 && name[:2] == "be":
		if _, err := fmt.Sscanf(name[2:], "%d", &width); err == nil && width > 0 && width <= 8 {
			return BigEndian{Width: width}, nil
		}
	case len(name) > 2 && name[:2] == "le":
		if _, err := fmt.Sscanf(name[2:], "%d", &width); err == nil && width > 0 && width <= 8 {
			return LittleEndian{Width: width}, nil
		}
	}
	return nil, fmt.Errorf("unknown prefix codec %q", name)
}
