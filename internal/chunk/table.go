// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const sparse24 = 0xffffff

// Offset is the start of a chunk in a data file, or nothing at all.
// The zero value is [Absent].
type Offset struct {
	pos     int64
	present bool
}

var Absent Offset

func At(pos int64) Offset { return Offset{pos: pos, present: true} }

func (o Offset) Present() bool { return o.present }
func (o Offset) Pos() int64    { return o.pos }

func (o Offset) String() string {
	if !o.present {
		return "absent"
	}
	return fmt.Sprintf("%#x", o.pos)
}

// Table has one entry per chunk and a final entry marking the end of the last chunk.
type Table []Offset

// Len is the number of chunks that can be addressed, not counting the end marker.
func (t Table) Len() int { return max(len(t)-1, 0) }

// Span resolves chunk i to a position and length.
// The length runs to the next present offset, so absent neighbours are skipped.
func (t Table) Span(i int) (off, n int64, err error) {
	if i < 0 || i >= t.Len() {
		return 0, 0, fmt.Errorf("chunk %d of %d: %w", i, t.Len(), ErrBounds)
	}
	if !t[i].present {
		return 0, 0, fmt.Errorf("chunk %d: %w", i, ErrSparse)
	}
	for _, next := range t[i+1:] {
		if !next.present {
			continue
		}
		if next.pos < t[i].pos {
			return 0, 0, fmt.Errorf("chunk %d ends at %#x before it starts at %#x: %w", i, next.pos, t[i].pos, ErrBounds)
		}
		return t[i].pos, next.pos - t[i].pos, nil
	}
	return 0, 0, fmt.Errorf("chunk %d has no end marker: %w", i, ErrBounds)
}

// Read24 reads n 24-bit offsets, where 0xffffff means the chunk is absent.
func Read24(r io.Reader, n int) (Table, error) {
	buf := make([]byte, 3*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, shortTable(err, n)
	}
	t := make(Table, n)
	for i := range t {
		v := uint32(buf[3*i]) | uint32(buf[3*i+1])<<8 | uint32(buf[3*i+2])<<16
		if v != sparse24 {
			t[i] = At(int64(v))
		}
	}
	return t, nil
}

// Read32 reads n 32-bit offsets. There is no sparse marker in these tables:
// an empty chunk is two equal offsets in a row.
func Read32(r io.Reader, n int) (Table, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, shortTable(err, n)
	}
	t := make(Table, n)
	for i := range t {
		t[i] = At(int64(binary.LittleEndian.Uint32(buf[4*i:])))
	}
	return t, nil
}

// ReadAll32 reads 32-bit offsets until the end of the stream.
func ReadAll32(r io.Reader) (Table, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("offset table of %d bytes has a partial entry: %w", len(buf), ErrFormat)
	}
	t := make(Table, len(buf)/4)
	for i := range t {
		t[i] = At(int64(binary.LittleEndian.Uint32(buf[4*i:])))
	}
	return t, nil
}

func shortTable(err error, n int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("offset table shorter than %d entries: %w", n, ErrFormat)
	}
	return err
}
