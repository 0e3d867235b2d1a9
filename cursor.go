package uview

import (
	"bytes"
	"encoding/binary"
	"math"
)

var le = binary.LittleEndian

// cursor reads little-endian values from a byte block.
// Reads past the end of the block fail with errShort and leave the
// position unchanged.
type cursor struct {
	buf []byte
	off int // Current offset in buf.
}

// errShort is returned by cursor reads running past the end of the buffer.
type errShort struct {
	off, want, have int
}

func (e errShort) Error() string {
	return "short buffer"
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// peek returns the n bytes at off+at without consuming them.
func (c *cursor) peek(at, n int) ([]byte, error) {
	start := c.off + at
	if n < 0 || start < 0 || start+n > len(c.buf) {
		return nil, errShort{off: start, want: n, have: len(c.buf) - start}
	}
	return c.buf[start : start+n], nil
}

func (c *cursor) read(n int) ([]byte, error) {
	p, err := c.peek(0, n)
	if err != nil {
		return nil, err
	}
	c.off += n
	return p, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.read(n)
	return err
}

func (c *cursor) int16() (int16, error) {
	p, err := c.read(2)
	if err != nil {
		return 0, err
	}
	return int16(le.Uint16(p)), nil
}

func (c *cursor) uint64() (uint64, error) {
	p, err := c.read(8)
	if err != nil {
		return 0, err
	}
	return le.Uint64(p), nil
}

func (c *cursor) uint8() (byte, error) {
	p, err := c.read(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// float32At decodes the float32 at off+at.
func (c *cursor) float32At(at int) (float32, error) {
	p, err := c.peek(at, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(le.Uint32(p)), nil
}

// uint16At decodes the uint16 at off+at.
func (c *cursor) uint16At(at int) (uint16, error) {
	p, err := c.peek(at, 2)
	if err != nil {
		return 0, err
	}
	return le.Uint16(p), nil
}

// cstringAt returns the bytes from off+at up to, not including, the next
// NUL byte.
func (c *cursor) cstringAt(at int) ([]byte, error) {
	start := c.off + at
	if start < 0 || start > len(c.buf) {
		return nil, errShort{off: start, want: 1, have: 0}
	}
	n := bytes.IndexByte(c.buf[start:], 0)
	if n < 0 {
		return nil, errShort{off: start, want: len(c.buf) - start + 1, have: len(c.buf) - start}
	}
	return c.buf[start : start+n], nil
}
