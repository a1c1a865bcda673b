// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package gamemaps reads levels from a MAPHEAD/GAMEMAPS pair.
//
// MAPHEAD holds the RLEW tag and 100 offsets into GAMEMAPS, zero for an unused slot.
// Each used offset points to a 38-byte record locating three tile planes,
// and each plane is Carmack-compressed RLEW-compressed 16-bit tile codes.
package gamemaps

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"

	"github.com/r1sc/libwolf/internal/carmack"
	"github.com/r1sc/libwolf/internal/chunk"
	"github.com/r1sc/libwolf/internal/rlew"
)

const (
	NumSlots  = 100
	NumPlanes = 3

	recordSize = 38
	nameSize   = 16
)

type Header struct {
	Tag   uint16
	Slots chunk.Table // unused slots are absent
}

func ReadHeader(r io.Reader) (*Header, error) {
	var tag [2]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("gamemaps: header has no RLEW tag: %w", chunk.ErrFormat)
		}
		return nil, err
	}
	slots, err := chunk.Read32(r, NumSlots)
	if err != nil {
		return nil, fmt.Errorf("gamemaps: %w", err)
	}
	for i, o := range slots {
		if o.Pos() == 0 {
			slots[i] = chunk.Absent
		}
	}
	return &Header{Tag: binary.LittleEndian.Uint16(tag[:]), Slots: slots}, nil
}

type Map struct {
	Slot          int
	Width, Height uint16
	Name          string
	Planes        [NumPlanes][]byte // little-endian tile codes, row by row
}

// Tile returns the code at (x, y) in a plane: walls in plane 0, objects in plane 1.
func (m *Map) Tile(plane, x, y int) uint16 {
	return binary.LittleEndian.Uint16(m.Planes[plane][2*(y*int(m.Width)+x):])
}

type Archive struct {
	hdr  *Header
	data chunk.Sized
}

func Open(head io.Reader, data chunk.Sized) (*Archive, error) {
	hdr, err := ReadHeader(head)
	if err != nil {
		return nil, err
	}
	return &Archive{hdr: hdr, data: data}, nil
}

func (a *Archive) Header() *Header { return a.hdr }

// Used lists the slots that hold a map.
func (a *Archive) Used() []int {
	var used []int
	for i, o := range a.hdr.Slots {
		if o.Present() {
			used = append(used, i)
		}
	}
	return used
}

// Maps decodes every used slot.
// One bad map fails the whole archive, since the planes share one data file.
func (a *Archive) Maps() ([]*Map, error) {
	var maps []*Map
	for _, slot := range a.Used() {
		m, err := a.Map(slot)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// Record is the fixed part of a map, read without expanding any plane.
type Record struct {
	Slot          int
	Width, Height uint16
	Name          string

	offs [NumPlanes]int32
	lens [NumPlanes]uint16
}

// PlaneSize is the expanded size of each plane in bytes.
func (r *Record) PlaneSize() int { return 2 * int(r.Width) * int(r.Height) }

func (a *Archive) Record(slot int) (*Record, error) {
	if slot < 0 || slot >= len(a.hdr.Slots) {
		return nil, fmt.Errorf("gamemaps: slot %d of %d: %w", slot, len(a.hdr.Slots), chunk.ErrBounds)
	}
	o := a.hdr.Slots[slot]
	if !o.Present() {
		return nil, fmt.Errorf("gamemaps: slot %d: %w", slot, chunk.ErrSparse)
	}

	rec, err := chunk.Slice(a.data, a.data.Size(), o.Pos(), recordSize)
	if err != nil {
		return nil, fmt.Errorf("gamemaps: slot %d record: %w", slot, err)
	}
	c := chunk.NewCursor(rec)
	r := &Record{Slot: slot}
	for i := range r.offs {
		r.offs[i] = c.I32()
	}
	for i := range r.lens {
		r.lens[i] = c.U16()
	}
	r.Width, r.Height = c.U16(), c.U16()
	r.Name = decodeName(c.Bytes(nameSize))
	return r, nil
}

func (a *Archive) Map(slot int) (*Map, error) {
	r, err := a.Record(slot)
	if err != nil {
		return nil, err
	}
	m := &Map{Slot: slot, Width: r.Width, Height: r.Height, Name: r.Name}
	for i := range m.Planes {
		m.Planes[i], err = a.plane(int64(r.offs[i]), int64(r.lens[i]))
		if err != nil {
			return nil, fmt.Errorf("gamemaps: slot %d plane %d: %w", slot, i, err)
		}
		if len(m.Planes[i]) != r.PlaneSize() {
			return nil, fmt.Errorf("gamemaps: slot %d plane %d is %d bytes, %dx%d needs %d: %w",
				slot, i, len(m.Planes[i]), m.Width, m.Height, r.PlaneSize(), chunk.ErrFormat)
		}
	}
	return m, nil
}

// Plane expands a single plane of a map.
func (a *Archive) Plane(slot, plane int) ([]byte, error) {
	r, err := a.Record(slot)
	if err != nil {
		return nil, err
	}
	if plane < 0 || plane >= NumPlanes {
		return nil, fmt.Errorf("gamemaps: plane %d: %w", plane, chunk.ErrBounds)
	}
	p, err := a.plane(int64(r.offs[plane]), int64(r.lens[plane]))
	if err != nil {
		return nil, fmt.Errorf("gamemaps: slot %d plane %d: %w", slot, plane, err)
	}
	if len(p) != r.PlaneSize() {
		return nil, fmt.Errorf("gamemaps: slot %d plane %d is %d bytes, %dx%d needs %d: %w",
			slot, plane, len(p), r.Width, r.Height, r.PlaneSize(), chunk.ErrFormat)
	}
	return p, nil
}

func (a *Archive) plane(off, n int64) ([]byte, error) {
	p, err := chunk.Slice(a.data, a.data.Size(), off, n)
	if err != nil {
		return nil, err
	}
	p, err = carmack.Expand(p)
	if err != nil {
		return nil, err
	}
	return rlew.Expand(p, a.hdr.Tag)
}

func decodeName(field []byte) string {
	field, _, _ = bytes.Cut(field, []byte{0})
	s, err := charmap.CodePage437.NewDecoder().Bytes(field)
	if err != nil {
		return string(field)
	}
	return string(s)
}
