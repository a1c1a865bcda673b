// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package chunk

import (
	"encoding/binary"
	"fmt"
)

// Cursor parses little-endian records from a byte slice.
// The first overrun is latched: later reads return zero and Err reports it.
type Cursor struct {
	b   []byte
	off int
	err error
}

func NewCursor(b []byte) *Cursor { return &Cursor{b: b} }

func (c *Cursor) Err() error  { return c.err }
func (c *Cursor) Offset() int { return c.off }
func (c *Cursor) Len() int    { return len(c.b) - c.off }

func (c *Cursor) Seek(off int) {
	if c.err == nil && (off < 0 || off > len(c.b)) {
		c.err = fmt.Errorf("seek to %d in a %d-byte record: %w", off, len(c.b), ErrFormat)
		return
	}
	if c.err == nil {
		c.off = off
	}
}

func (c *Cursor) Bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > len(c.b)-c.off {
		c.err = fmt.Errorf("%d bytes at %d in a %d-byte record: %w", n, c.off, len(c.b), ErrFormat)
		return nil
	}
	p := c.b[c.off:][:n:n]
	c.off += n
	return p
}

func (c *Cursor) U8() uint8 {
	if p := c.Bytes(1); p != nil {
		return p[0]
	}
	return 0
}

func (c *Cursor) U16() uint16 {
	if p := c.Bytes(2); p != nil {
		return binary.LittleEndian.Uint16(p)
	}
	return 0
}

func (c *Cursor) I16() int16 { return int16(c.U16()) }

func (c *Cursor) U24() uint32 {
	if p := c.Bytes(3); p != nil {
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	}
	return 0
}

func (c *Cursor) U32() uint32 {
	if p := c.Bytes(4); p != nil {
		return binary.LittleEndian.Uint32(p)
	}
	return 0
}

func (c *Cursor) I32() int32 { return int32(c.U32()) }
