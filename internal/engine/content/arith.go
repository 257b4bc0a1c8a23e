package content

// Increment adds one to the big-endian word of wordSize bytes that ends
// at offset. The carry moves left and stops at the word boundary or at
// the start of the buffer, so the buffer never grows. It returns the
// original value of every byte it changed, leftmost first.
func (c *Content) Increment(offset, wordSize int) ([]byte, error) {
	return c.step(offset, wordSize, 1)
}

// Decrement subtracts one from the big-endian word ending at offset,
// borrowing leftward. See Increment.
func (c *Content) Decrement(offset, wordSize int) ([]byte, error) {
	return c.step(offset, wordSize, -1)
}

func (c *Content) step(offset, wordSize, dir int) ([]byte, error) {
	if offset < 0 || offset >= len(c.data) {
		return nil, c.boundsError(offset, wordSize)
	}
	if wordSize < 1 {
		wordSize = 1
	}
	first := max(0, offset-(wordSize-1))

	// The overflow value wraps and the carry moves on.
	wrapFrom, wrapTo := byte(0xff), byte(0x00)
	if dir < 0 {
		wrapFrom, wrapTo = 0x00, 0xff
	}

	var old []byte
	for i := offset; ; i-- {
		v := c.data[i]
		old = append(old, v)
		if v != wrapFrom {
			c.data[i] = byte(int(v) + dir)
			break
		}
		c.data[i] = wrapTo
		if i == first {
			break
		}
	}

	// Collected right to left.
	for l, r := 0, len(old)-1; l < r; l, r = l+1, r-1 {
		old[l], old[r] = old[r], old[l]
	}
	return old, nil
}
