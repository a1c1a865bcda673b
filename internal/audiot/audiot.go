// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package audiot slices the uncompressed sound and music chunks out of AUDIOT,
// using the offsets in AUDIOHED.
package audiot

import (
	"fmt"
	"io"

	"github.com/r1sc/libwolf/internal/chunk"
)

// Layout gives the chunk ranges of the sound archive, from the game's AUDIOWL6.H.
// Each sound effect is stored three times: for the PC speaker, the AdLib and as digitized sound.
type Layout struct {
	NumSounds  int
	StartPC    int
	StartAdlib int
	StartDigi  int
	StartMusic int
	NumMusic   int
}

var WL6 = Layout{
	NumSounds:  87,
	StartPC:    0,
	StartAdlib: 87,
	StartDigi:  174,
	StartMusic: 261,
	NumMusic:   27,
}

// Archive is not safe for concurrent use.
type Archive struct {
	layout Layout
	offs   chunk.Table
	data   chunk.Sized
}

func Open(head io.Reader, data chunk.Sized, layout Layout) (*Archive, error) {
	offs, err := chunk.ReadAll32(head)
	if err != nil {
		return nil, fmt.Errorf("audiot: %w", err)
	}
	return &Archive{layout: layout, offs: offs, data: data}, nil
}

func (a *Archive) Layout() Layout { return a.layout }
func (a *Archive) Len() int       { return a.offs.Len() }

// Chunk returns chunk i. An absent chunk is two equal offsets, so it comes back empty.
func (a *Archive) Chunk(i int) ([]byte, error) {
	b, err := a.offs.Read(a.data, i)
	if err != nil {
		return nil, fmt.Errorf("audiot: chunk %d: %w", i, err)
	}
	return b, nil
}

// Music returns the raw IMF command stream of a music track.
func (a *Archive) Music(track int) ([]byte, error) {
	if track < 0 || track >= a.layout.NumMusic {
		return nil, fmt.Errorf("audiot: track %d of %d: %w", track, a.layout.NumMusic, chunk.ErrBounds)
	}
	return a.Chunk(a.layout.StartMusic + track)
}

// ChunkSize is the length of chunk i, found without reading it.
func (a *Archive) ChunkSize(i int) (int64, error) {
	_, n, err := a.offs.Span(i)
	if err != nil {
		return 0, fmt.Errorf("audiot: chunk %d: %w", i, err)
	}
	return n, nil
}
