// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package vswap reads the page file holding wall textures, sprites and digitized sound.
// Pages are stored uncompressed, so the whole index is read when the archive is opened
// and the Archive is safe for concurrent use afterwards.
package vswap

import (
	"fmt"

	"github.com/r1sc/libwolf/internal/chunk"
)

// PCMRate is the sample rate of digitized sound: unsigned 8-bit mono.
const PCMRate = 7000

// Descriptor locates one digitized sound as a run of sound pages.
type Descriptor struct {
	Start  uint16 // first page, counted from the first sound page
	Length uint16 // in bytes, without the padding of the last page
}

type Archive struct {
	walls, sprites, sounds [][]byte
	descs                  []Descriptor
	pcm                    [][]byte
}

func Open(r chunk.Sized) (*Archive, error) {
	hdr, err := chunk.Slice(r, r.Size(), 0, 6)
	if err != nil {
		return nil, fmt.Errorf("vswap: header: %w", chunk.ErrFormat)
	}
	c := chunk.NewCursor(hdr)
	count, spriteStart, soundStart := int(c.U16()), int(c.U16()), int(c.U16())
	if count == 0 || spriteStart > soundStart || soundStart > count-1 {
		return nil, fmt.Errorf("vswap: %d pages with sprites at %d and sounds at %d: %w", count, spriteStart, soundStart, chunk.ErrFormat)
	}

	index, err := chunk.Slice(r, r.Size(), 6, 6*int64(count))
	if err != nil {
		return nil, fmt.Errorf("vswap: page index: %w", chunk.ErrFormat)
	}
	c = chunk.NewCursor(index)
	offs := make([]uint32, count)
	for i := range offs {
		offs[i] = c.U32()
	}
	pages := make([][]byte, count)
	for i := range pages {
		n := c.U16()
		if n == 0 || offs[i] == 0 {
			pages[i] = []byte{} // sparse
			continue
		}
		pages[i], err = chunk.Slice(r, r.Size(), int64(offs[i]), int64(n))
		if err != nil {
			return nil, fmt.Errorf("vswap: page %d: %w", i, err)
		}
	}

	a := &Archive{
		walls:   pages[:spriteStart],
		sprites: pages[spriteStart:soundStart],
		sounds:  pages[soundStart : count-1],
	}
	if err := a.stitch(pages[count-1]); err != nil {
		return nil, fmt.Errorf("vswap: %w", err)
	}
	return a, nil
}

// stitch joins the sound pages of each descriptor and cuts off the padding.
// The final descriptor only marks where the previous one ends.
func (a *Archive) stitch(table []byte) error {
	c := chunk.NewCursor(table)
	for range len(table) / 4 {
		a.descs = append(a.descs, Descriptor{Start: c.U16(), Length: c.U16()})
	}
	for i := 0; i+1 < len(a.descs); i++ {
		d, end := a.descs[i], int(a.descs[i+1].Start)
		if int(d.Start) > end {
			return fmt.Errorf("sound %d starts at page %d after its end %d: %w", i, d.Start, end, chunk.ErrFormat)
		}
		if end > len(a.sounds) {
			return fmt.Errorf("sound %d runs to page %d of %d: %w", i, end, len(a.sounds), chunk.ErrBounds)
		}
		pcm := make([]byte, 0, d.Length)
		for _, page := range a.sounds[d.Start:end] {
			pcm = append(pcm, page[:min(len(page), int(d.Length)-len(pcm))]...)
		}
		if len(pcm) != int(d.Length) {
			return fmt.Errorf("sound %d is %d bytes, pages hold only %d: %w", i, d.Length, len(pcm), chunk.ErrFormat)
		}
		a.pcm = append(a.pcm, pcm)
	}
	return nil
}

func (a *Archive) Walls() int   { return len(a.walls) }
func (a *Archive) Sprites() int { return len(a.sprites) }
func (a *Archive) Sounds() int  { return len(a.pcm) }

// Descriptors returns the PCM descriptor table including the final delimiter.
func (a *Archive) Descriptors() []Descriptor { return a.descs }

// Sound returns digitized sound i, to be played at [PCMRate].
func (a *Archive) Sound(i int) ([]byte, error) {
	if i < 0 || i >= len(a.pcm) {
		return nil, fmt.Errorf("vswap: sound %d of %d: %w", i, len(a.pcm), chunk.ErrBounds)
	}
	return a.pcm[i], nil
}

// SpritePage returns the undecoded page of sprite i.
func (a *Archive) SpritePage(i int) ([]byte, error) {
	return page(a.sprites, "sprite", i)
}

func page(pages [][]byte, kind string, i int) ([]byte, error) {
	if i < 0 || i >= len(pages) {
		return nil, fmt.Errorf("vswap: %s %d of %d: %w", kind, i, len(pages), chunk.ErrBounds)
	}
	if len(pages[i]) == 0 {
		return nil, fmt.Errorf("vswap: %s %d: %w", kind, i, chunk.ErrSparse)
	}
	return pages[i], nil
}
