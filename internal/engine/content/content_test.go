package content

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/search"
)

func TestInsertBounds(t *testing.T) {
	c := New(nil)
	if err := c.Insert(0, []byte{0x41}); err != nil {
		t.Fatalf("Insert(0) failed: %v", err)
	}

	c = New(nil)
	err := c.Insert(10, []byte{0x41})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundsError, got %T", err)
	}
	if be.Offset != 10 || be.Length != 1 {
		t.Errorf("got OutOfBounds(%d, %d), want (10, 1)", be.Offset, be.Length)
	}
	if c.Len() != 0 {
		t.Errorf("failed insert grew buffer to %d", c.Len())
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	orig := []byte{1, 2, 3, 4, 5}
	ins := []byte{0xaa, 0xbb, 0xcc}

	for offset := 0; offset <= len(orig); offset++ {
		c := New(orig)
		if err := c.Insert(offset, ins); err != nil {
			t.Fatalf("Insert(%d) failed: %v", offset, err)
		}
		removed := c.Remove(offset, len(ins))
		if !bytes.Equal(removed, ins) {
			t.Errorf("Remove(%d) returned %x, want %x", offset, removed, ins)
		}
		if !bytes.Equal(c.Bytes(), orig) {
			t.Errorf("offset %d: got %x, want %x", offset, c.Bytes(), orig)
		}
	}
}

func TestRemoveClamps(t *testing.T) {
	c := New([]byte{1, 2, 3})
	if got := c.Remove(1, 10); !bytes.Equal(got, []byte{2, 3}) {
		t.Errorf("Remove(1, 10) = %x", got)
	}
	if got := c.Remove(5, 1); len(got) != 0 {
		t.Errorf("Remove past end = %x, want empty", got)
	}
	if !bytes.Equal(c.Bytes(), []byte{1}) {
		t.Errorf("buffer = %x", c.Bytes())
	}
}

func TestChunkClamps(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	tests := []struct {
		offset, length int
		want           []byte
	}{
		{0, 2, []byte{1, 2}},
		{2, 10, []byte{3, 4}},
		{4, 1, []byte{}},
		{9, 3, []byte{}},
		{1, 0, []byte{}},
	}
	for _, tt := range tests {
		if got := c.Chunk(tt.offset, tt.length); !bytes.Equal(got, tt.want) {
			t.Errorf("Chunk(%d, %d) = %x, want %x", tt.offset, tt.length, got, tt.want)
		}
	}
}

func TestOverwrite(t *testing.T) {
	c := New([]byte{1, 2, 3})
	old, err := c.Overwrite(1, []byte{9, 9, 9})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(old, []byte{2, 3}) {
		t.Errorf("old = %x", old)
	}
	if !bytes.Equal(c.Bytes(), []byte{1, 9, 9, 9}) {
		t.Errorf("buffer = %x", c.Bytes())
	}
	if _, err := c.Overwrite(8, []byte{1}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSetByte(t *testing.T) {
	c := New([]byte{7})
	old, err := c.SetByte(0, 8)
	if err != nil || old != 7 {
		t.Fatalf("SetByte = %d, %v", old, err)
	}
	if _, err := c.SetByte(1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestIncrementDecrement(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		offset   int
		wordSize int
		want     []byte
		wantOld  []byte
	}{
		{"simple", []byte{0x10}, 0, 1, []byte{0x11}, []byte{0x10}},
		{"carry", []byte{0x00, 0xff}, 1, 2, []byte{0x01, 0x00}, []byte{0x00, 0xff}},
		{"carry stops at word", []byte{0x00, 0xff, 0xff}, 2, 2, []byte{0x00, 0x00, 0x00}, []byte{0xff, 0xff}},
		{"carry stops at start", []byte{0xff, 0xff}, 1, 4, []byte{0x00, 0x00}, []byte{0xff, 0xff}},
		{"word size zero", []byte{0xff, 0x01}, 1, 0, []byte{0xff, 0x02}, []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.data)
			old, err := c.Increment(tt.offset, tt.wordSize)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(c.Bytes(), tt.want) {
				t.Errorf("after increment = %x, want %x", c.Bytes(), tt.want)
			}
			if !bytes.Equal(old, tt.wantOld) {
				t.Errorf("old = %x, want %x", old, tt.wantOld)
			}
			if _, err := c.Decrement(tt.offset, tt.wordSize); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(c.Bytes(), tt.data) {
				t.Errorf("after decrement = %x, want %x", c.Bytes(), tt.data)
			}
		})
	}
}

func TestIncrementRoundTripAllBytes(t *testing.T) {
	for v := 0; v < 256; v++ {
		for wordSize := 1; wordSize <= 3; wordSize++ {
			orig := []byte{0xff, byte(v), 0xff}
			c := New(orig)
			if _, err := c.Increment(2, wordSize); err != nil {
				t.Fatal(err)
			}
			if _, err := c.Decrement(2, wordSize); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(c.Bytes(), orig) {
				t.Fatalf("v=%d word=%d: got %x, want %x", v, wordSize, c.Bytes(), orig)
			}
		}
	}
}

func TestIncrementOutOfBounds(t *testing.T) {
	c := New([]byte{1})
	if _, err := c.Increment(1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := c.Decrement(-1, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestApplyMask(t *testing.T) {
	tests := []struct {
		op   MaskOp
		want byte
	}{
		{And, 0x0c & 0x0a},
		{Or, 0x0c | 0x0a},
		{Xor, 0x0c ^ 0x0a},
		{Nand, ^byte(0x0c & 0x0a)},
		{Nor, ^byte(0x0c | 0x0a)},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			c := New([]byte{0x0c})
			old, err := c.ApplyMask(0, []byte{0x0a}, tt.op)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(old, []byte{0x0c}) {
				t.Errorf("old = %x", old)
			}
			if b, _ := c.Byte(0); b != tt.want {
				t.Errorf("got %#x, want %#x", b, tt.want)
			}
		})
	}
}

func TestApplyMaskXorIsInvolution(t *testing.T) {
	orig := []byte{0x00, 0x5a, 0xff, 0x13}
	c := New(orig)
	ones := RepeatMask([]byte{0xff}, len(orig))
	for i := 0; i < 2; i++ {
		if _, err := c.ApplyMask(0, ones, Xor); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(c.Bytes(), orig) {
		t.Errorf("got %x, want %x", c.Bytes(), orig)
	}
}

func TestApplyMaskTruncates(t *testing.T) {
	c := New([]byte{0xf0, 0x0f})
	old, err := c.ApplyMask(1, []byte{0xff, 0xff, 0xff}, Xor)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(old, []byte{0x0f}) || !bytes.Equal(c.Bytes(), []byte{0xf0, 0xf0}) {
		t.Errorf("old = %x, buffer = %x", old, c.Bytes())
	}
	if _, err := c.ApplyMask(2, []byte{1}, Or); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestRepeatMask(t *testing.T) {
	if got := RepeatMask([]byte{1, 2}, 5); !bytes.Equal(got, []byte{1, 2, 1, 2, 1}) {
		t.Errorf("RepeatMask = %x", got)
	}
	if got := RepeatMask(nil, 3); got != nil {
		t.Errorf("RepeatMask(nil) = %x", got)
	}
}

func TestReplaceDigit(t *testing.T) {
	tests := []struct {
		name     string
		in       byte
		position int
		value    uint8
		radix    int
		want     byte
	}{
		{"hex low nibble", 0xab, 0, 0x5, 16, 0xa5},
		{"hex high nibble", 0xab, 1, 0x1, 16, 0x1b},
		{"binary bit", 0x00, 7, 1, 2, 0x80},
		{"decimal ones", 120, 0, 9, 10, 129},
		{"decimal hundreds", 99, 2, 1, 10, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New([]byte{tt.in})
			old, err := c.ReplaceDigit(0, tt.position, tt.value, tt.radix)
			if err != nil {
				t.Fatal(err)
			}
			if old != tt.in {
				t.Errorf("old = %d, want %d", old, tt.in)
			}
			if b, _ := c.Byte(0); b != tt.want {
				t.Errorf("got %d, want %d", b, tt.want)
			}
		})
	}
}

func TestReplaceDigitInvalid(t *testing.T) {
	c := New([]byte{250})
	if _, err := c.ReplaceDigit(0, 1, 9, 10); !errors.Is(err, ErrInvalidDigit) {
		t.Errorf("290 should be rejected, got %v", err)
	}
	if _, err := c.ReplaceDigit(0, 0, 2, 2); !errors.Is(err, ErrInvalidDigit) {
		t.Errorf("2 is not a binary digit, got %v", err)
	}
	if b, _ := c.Byte(0); b != 250 {
		t.Errorf("failed edit changed byte to %d", b)
	}
	if _, err := c.ReplaceDigit(3, 0, 1, 16); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestFindAll(t *testing.T) {
	c := New([]byte{0x41, 0x42, 0x00, 0x00, 0x41, 0x41, 0x42, 0x41})
	got, err := c.FindAll("AB")
	if err != nil {
		t.Fatal(err)
	}
	want := []search.Match{{Start: 0, End: 2}, {Start: 5, End: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll = %v, want %v", got, want)
	}

	c = New([]byte{0x90, 0x91, 0x80, 0x80, 0x90, 0x04, 0x06, 0x00})
	got, err = c.FindAll(`\b1.0`)
	if err != nil {
		t.Fatal(err)
	}
	want = []search.Match{{Start: 5, End: 6}, {Start: 6, End: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll wildcard = %v, want %v", got, want)
	}

	if _, err := c.FindAll(`\b`); !errors.Is(err, search.ErrInvalidBinary) {
		t.Errorf("expected ErrInvalidBinary, got %v", err)
	}
}
