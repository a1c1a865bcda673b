// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package vswap

import (
	"fmt"

	"github.com/r1sc/libwolf/internal/chunk"
)

// Side is the width and height of walls and sprites.
const Side = 64

// Wall is a texture stored column by column.
type Wall []byte

func (a *Archive) Wall(i int) (Wall, error) {
	p, err := page(a.walls, "wall", i)
	if err != nil {
		return nil, err
	}
	if len(p) < Side*Side {
		return nil, fmt.Errorf("vswap: wall %d is %d bytes: %w", i, len(p), chunk.ErrFormat)
	}
	return Wall(p[:Side*Side]), nil
}

func (w Wall) Texel(x, y int) byte { return w[x*Side+y] }

// Linear returns the texture row by row.
func (w Wall) Linear() []byte {
	out := make([]byte, Side*Side)
	for x := range Side {
		for y := range Side {
			out[y*Side+x] = w.Texel(x, y)
		}
	}
	return out
}

// Sprite is a decoded sprite, row by row. Pixels not covered by a post are transparent.
type Sprite struct {
	Left, Right int
	Pixels      [Side * Side]byte
	Opaque      [Side * Side]bool
}

// Sprite decodes sprite i. Each column between Left and Right has a list of posts,
// (end*2, unused, start*2) triples ended by a zero, and the pixels of all posts
// follow the column offsets in order.
func (a *Archive) Sprite(i int) (*Sprite, error) {
	p, err := a.SpritePage(i)
	if err != nil {
		return nil, err
	}
	s, err := decodeSprite(p)
	if err != nil {
		return nil, fmt.Errorf("vswap: sprite %d: %w", i, err)
	}
	return s, nil
}

func decodeSprite(p []byte) (*Sprite, error) {
	c := chunk.NewCursor(p)
	s := &Sprite{Left: int(c.U16()), Right: int(c.U16())}
	if s.Left > s.Right || s.Right >= Side {
		return nil, fmt.Errorf("columns %d to %d: %w", s.Left, s.Right, chunk.ErrFormat)
	}
	cols := make([]int, s.Right-s.Left+1)
	for i := range cols {
		cols[i] = int(c.U16())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	pix := c.Offset()
	for i, off := range cols {
		x := s.Left + i
		if off >= len(p) {
			return nil, fmt.Errorf("column %d at %#x: %w", x, off, chunk.ErrFormat)
		}
		c.Seek(off)
		for {
			end := int(c.U16()) / 2
			if end == 0 || c.Err() != nil {
				break
			}
			c.U16()
			start := int(c.U16()) / 2
			if c.Err() != nil {
				break
			}
			if start > end || end > Side {
				return nil, fmt.Errorf("column %d post %d-%d: %w", x, start, end, chunk.ErrFormat)
			}
			if pix+end-start > len(p) {
				return nil, fmt.Errorf("column %d pixels run past the page: %w", x, chunk.ErrFormat)
			}
			for y := start; y < end; y++ {
				s.Pixels[y*Side+x] = p[pix]
				s.Opaque[y*Side+x] = true
				pix++
			}
		}
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("column %d: %w", x, err)
		}
	}
	return s, nil
}
