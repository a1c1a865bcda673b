// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package vgagraph

import (
	"fmt"

	"github.com/r1sc/libwolf/internal/chunk"
)

// Font is a proportional font: every glyph has the same height
// and is stored as width*height bytes, row by row, nonzero meaning ink.
type Font struct {
	Height   int
	Location [256]uint16
	Width    [256]uint8
	Data     []byte
}

func (a *Archive) LoadFont(i int) (*Font, error) {
	if a.layout.Kind(i) != KindFont || i >= a.layout.StartFont+a.layout.NumFonts {
		return nil, fmt.Errorf("vgagraph: chunk %d is a %s, not a font: %w", i, a.layout.Kind(i), chunk.ErrFormat)
	}
	data, err := a.ExpandChunk(i)
	if err != nil {
		return nil, err
	}
	c := chunk.NewCursor(data)
	f := &Font{Height: int(c.I16()), Data: data}
	for ch := range f.Location {
		f.Location[ch] = c.U16()
	}
	for ch := range f.Width {
		f.Width[ch] = c.U8()
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("vgagraph: font %d header: %w", i, err)
	}
	if f.Height < 0 {
		return nil, fmt.Errorf("vgagraph: font %d height %d: %w", i, f.Height, chunk.ErrFormat)
	}
	return f, nil
}

// Glyph returns the bitmap of character ch, or ErrFormat if it lies outside the chunk.
func (f *Font) Glyph(ch byte) (width int, bitmap []byte, err error) {
	width = int(f.Width[ch])
	off, n := int(f.Location[ch]), width*f.Height
	if off+n > len(f.Data) {
		return 0, nil, fmt.Errorf("vgagraph: glyph %#02x reaches %d, font is %d bytes: %w", ch, off+n, len(f.Data), chunk.ErrFormat)
	}
	return width, f.Data[off : off+n], nil
}
