// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package carmack expands the back-reference compression used for map planes.
//
// The stream is a little-endian word count followed by 16-bit words.
// A word whose high byte is 0xA7 is a near pointer (a word distance back from the
// current position), 0xA8 is a far pointer (a word index from the start of the output),
// and anything else is a literal word.
// A pointer with a zero count escapes a literal word that happens to start with 0xA7 or 0xA8.
package carmack

import (
	"encoding/binary"
	"fmt"

	"github.com/r1sc/libwolf/internal/chunk"
)

const (
	nearTag = 0xa7
	farTag  = 0xa8
)

var ErrFormat = chunk.ErrFormat

// Expand decompresses src, whose first word is the expanded size in bytes.
func Expand(src []byte) ([]byte, error) {
	if len(src) < 2 {
		return nil, fmt.Errorf("carmack: no length word: %w", ErrFormat)
	}
	size := int(binary.LittleEndian.Uint16(src))
	in := src[2:]
	out := make([]byte, 0, size)

	next := func(n int) ([]byte, bool) {
		if len(in) < n {
			return nil, false
		}
		p := in[:n]
		in = in[n:]
		return p, true
	}

	for remain := size / 2; remain > 0; {
		w, ok := next(2)
		if !ok {
			return out, truncated(size, out)
		}
		count, tag := int(w[0]), w[1]

		if tag != nearTag && tag != farTag {
			out = append(out, w[0], w[1])
			remain--
			continue
		}

		if count == 0 { // escaped: the low byte of the literal follows
			lo, ok := next(1)
			if !ok {
				return out, truncated(size, out)
			}
			out = append(out, lo[0], tag)
			remain--
			continue
		}

		var from int
		if tag == nearTag {
			d, ok := next(1)
			if !ok {
				return out, truncated(size, out)
			}
			from = len(out) - 2*int(d[0])
		} else {
			d, ok := next(2)
			if !ok {
				return out, truncated(size, out)
			}
			from = 2 * int(binary.LittleEndian.Uint16(d))
		}

		if count > remain {
			return out, fmt.Errorf("carmack: copy of %d words with %d left: %w", count, remain, ErrFormat)
		}
		if from < 0 || from >= len(out) {
			return out, fmt.Errorf("carmack: pointer to %d with %d bytes written: %w", from, len(out), ErrFormat)
		}

		// Byte at a time: the source may overlap the bytes being written
		for i := range 2 * count {
			out = append(out, out[from+i])
		}
		remain -= count
	}

	if len(out) != size {
		return out, fmt.Errorf("carmack: expanded to %d bytes, expected %d: %w", len(out), size, ErrFormat)
	}
	return out, nil
}

func truncated(size int, out []byte) error {
	return fmt.Errorf("carmack: stream ended after %d of %d bytes: %w", len(out), size, ErrFormat)
}
