// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package imf decodes the AdLib music format stored in AUDIOT:
// a byte length, then OPL2 register writes each followed by a delay.
package imf

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/r1sc/libwolf/internal/chunk"
)

// TickRate is the number of delay ticks per second.
const TickRate = 700

type Command struct {
	Reg, Value uint8
	Delay      uint16 // ticks to wait after the write
}

type Song struct {
	Commands []Command
}

// Parse reads a music chunk. Bytes after the declared length,
// such as the tag data some tracks carry, are ignored.
func Parse(b []byte) (*Song, error) {
	c := chunk.NewCursor(b)
	n := int(c.U16())
	body := c.Bytes(n)
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("imf: %d-byte song in a %d-byte chunk: %w", n, len(b), chunk.ErrFormat)
	}
	if n%4 != 0 {
		return nil, fmt.Errorf("imf: song length %d is not whole commands: %w", n, chunk.ErrFormat)
	}
	s := &Song{Commands: make([]Command, n/4)}
	for i := range s.Commands {
		cmd := body[4*i:]
		s.Commands[i] = Command{Reg: cmd[0], Value: cmd[1], Delay: binary.LittleEndian.Uint16(cmd[2:])}
	}
	return s, nil
}

// Ticks is the length of the song in ticks of [TickRate].
func (s *Song) Ticks() int {
	n := 0
	for _, c := range s.Commands {
		n += int(c.Delay)
	}
	return n
}

func (s *Song) Duration() time.Duration {
	return time.Duration(s.Ticks()) * time.Second / TickRate
}

// WriteTo writes the song as a standalone type-1 IMF file, length first, as id Software's players expect.
func (s *Song) WriteTo(w io.Writer) (int64, error) {
	n := 4 * len(s.Commands)
	if n > 0xffff {
		return 0, fmt.Errorf("imf: %d commands do not fit a type-1 file", len(s.Commands))
	}
	b := binary.LittleEndian.AppendUint16(make([]byte, 0, 2+n), uint16(n))
	for _, c := range s.Commands {
		b = append(b, c.Reg, c.Value)
		b = binary.LittleEndian.AppendUint16(b, c.Delay)
	}
	written, err := w.Write(b)
	return int64(written), err
}
