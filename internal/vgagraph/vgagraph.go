// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package vgagraph reads the Huffman-compressed graphics archive:
// VGADICT (the tree), VGAHEAD (24-bit chunk offsets) and VGAGRAPH (the chunks).
//
// Chunk 0 is the table of picture sizes, so it is expanded as soon as the archive is opened.
// An Archive is not safe for concurrent use.
package vgagraph

import (
	"fmt"
	"io"

	"github.com/r1sc/libwolf/internal/chunk"
	"github.com/r1sc/libwolf/internal/huffman"
)

type PicSize struct {
	Width, Height uint16
}

type Archive struct {
	layout   Layout
	dict     *huffman.Dict
	starts   chunk.Table
	graph    chunk.Sized
	picSizes []PicSize
}

func Open(dict, head io.Reader, graph chunk.Sized, layout Layout) (*Archive, error) {
	d, err := huffman.ReadDict(dict)
	if err != nil {
		return nil, fmt.Errorf("vgagraph: %w", err)
	}
	starts, err := chunk.Read24(head, layout.NumChunks+1)
	if err != nil {
		return nil, fmt.Errorf("vgagraph: %w", err)
	}
	a := &Archive{layout: layout, dict: d, starts: starts, graph: graph}

	table, err := a.ExpandChunk(0)
	if err != nil {
		return nil, fmt.Errorf("vgagraph: picture table: %w", err)
	}
	c := chunk.NewCursor(table)
	a.picSizes = make([]PicSize, layout.NumPics)
	for i := range a.picSizes {
		a.picSizes[i] = PicSize{Width: c.U16(), Height: c.U16()}
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("vgagraph: picture table has fewer than %d entries: %w", layout.NumPics, err)
	}
	return a, nil
}

func (a *Archive) Layout() Layout { return a.layout }
func (a *Archive) Len() int       { return a.starts.Len() }

// Present reports whether chunk i has any data. Sparse chunks cannot be expanded.
func (a *Archive) Present(i int) bool {
	return i >= 0 && i < a.starts.Len() && a.starts[i].Present()
}

// ExpandChunk reads and decompresses chunk i.
// A sparse chunk fails with [chunk.ErrSparse] before anything is read.
func (a *Archive) ExpandChunk(i int) ([]byte, error) {
	src, err := a.starts.Read(a.graph, i)
	if err != nil {
		return nil, fmt.Errorf("vgagraph: chunk %d: %w", i, err)
	}

	if size, ok := a.layout.implicitSize(i); ok {
		// No length prefix: decode until the input runs out,
		// then drop whatever the padding bits of the last byte decoded to.
		out := a.dict.ExpandAll(src, size)
		if len(out) < size {
			return nil, fmt.Errorf("vgagraph: %s chunk %d expanded to %d bytes, expected %d: %w",
				a.layout.Kind(i), i, len(out), size, chunk.ErrFormat)
		}
		return out[:size], nil
	}

	c := chunk.NewCursor(src)
	size := int64(c.U32())
	if c.Err() != nil {
		return nil, fmt.Errorf("vgagraph: chunk %d has no length prefix: %w", i, chunk.ErrFormat)
	}
	rest := src[c.Offset():]
	if size > 8*int64(len(rest)) { // every code is at least one bit
		return nil, fmt.Errorf("vgagraph: chunk %d claims %d bytes from %d compressed: %w", i, size, len(rest), chunk.ErrFormat)
	}
	out, err := a.dict.Expand(rest, int(size))
	if err != nil {
		return nil, fmt.Errorf("vgagraph: chunk %d: %w", i, err)
	}
	return out, nil
}

// ExpandedSize is the size ExpandChunk will return, found without decoding:
// either the implicit size of a tile chunk or the chunk's length prefix.
func (a *Archive) ExpandedSize(i int) (int, error) {
	if size, ok := a.layout.implicitSize(i); ok {
		if !a.Present(i) {
			return 0, fmt.Errorf("vgagraph: chunk %d: %w", i, chunk.ErrSparse)
		}
		return size, nil
	}
	off, n, err := a.starts.Span(i)
	if err != nil {
		return 0, fmt.Errorf("vgagraph: chunk %d: %w", i, err)
	}
	if n < 4 {
		return 0, fmt.Errorf("vgagraph: chunk %d has no length prefix: %w", i, chunk.ErrFormat)
	}
	prefix, err := chunk.Slice(a.graph, a.graph.Size(), off, 4)
	if err != nil {
		return 0, fmt.Errorf("vgagraph: chunk %d: %w", i, err)
	}
	return int(chunk.NewCursor(prefix).U32()), nil
}

func (a *Archive) isPic(i int) bool {
	return i >= a.layout.StartPics && i < a.layout.StartPics+a.layout.NumPics
}

// PicSize looks up the dimensions of picture chunk i.
func (a *Archive) PicSize(i int) (PicSize, error) {
	if !a.isPic(i) {
		return PicSize{}, fmt.Errorf("vgagraph: chunk %d: %w", i, chunk.ErrNotAPic)
	}
	return a.picSizes[i-a.layout.StartPics], nil
}

// Pic is a VGA picture stored as four planes, each holding every fourth column.
type Pic struct {
	Chunk int
	Size  PicSize
	Data  []byte
}

func (a *Archive) LoadPic(i int) (*Pic, error) {
	size, err := a.PicSize(i)
	if err != nil {
		return nil, err
	}
	data, err := a.ExpandChunk(i)
	if err != nil {
		return nil, err
	}
	if len(data) < int(size.Width)*int(size.Height) {
		return nil, fmt.Errorf("vgagraph: pic %d is %d bytes, %dx%d needs %d: %w",
			i, len(data), size.Width, size.Height, int(size.Width)*int(size.Height), chunk.ErrFormat)
	}
	return &Pic{Chunk: i, Size: size, Data: data}, nil
}

// Pixel returns the palette index at (x, y).
func (p *Pic) Pixel(x, y int) byte {
	quarter := int(p.Size.Width) / 4
	plane := quarter * int(p.Size.Height)
	return p.Data[(x%4)*plane+y*quarter+x/4]
}

// Linear returns the palette indices row by row.
func (p *Pic) Linear() []byte {
	w, h := int(p.Size.Width), int(p.Size.Height)
	out := make([]byte, w*h)
	for y := range h {
		for x := range w {
			out[y*w+x] = p.Pixel(x, y)
		}
	}
	return out
}
