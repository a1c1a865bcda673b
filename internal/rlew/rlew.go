// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package rlew expands run-length encoded 16-bit words.
//
// After a little-endian byte count, every word is a literal
// except the tag word, which is followed by a repeat count and the word to repeat.
// Map files choose their own tag and store it at the start of MAPHEAD.
package rlew

import (
	"encoding/binary"
	"fmt"

	"github.com/r1sc/libwolf/internal/chunk"
)

var ErrFormat = chunk.ErrFormat

// Expand decompresses src, whose first word is the expanded size in bytes.
func Expand(src []byte, tag uint16) ([]byte, error) {
	if len(src) < 2 {
		return nil, fmt.Errorf("rlew: no length word: %w", ErrFormat)
	}
	size := int(binary.LittleEndian.Uint16(src))
	in := src[2:]
	out := make([]byte, 0, size)

	word := func() (uint16, bool) {
		if len(in) < 2 {
			return 0, false
		}
		w := binary.LittleEndian.Uint16(in)
		in = in[2:]
		return w, true
	}

	for len(out) < size {
		w, ok := word()
		if !ok {
			return out, fmt.Errorf("rlew: stream ended after %d of %d bytes: %w", len(out), size, ErrFormat)
		}
		if w != tag {
			out = binary.LittleEndian.AppendUint16(out, w)
			continue
		}

		count, ok1 := word()
		value, ok2 := word()
		if !ok1 || !ok2 {
			return out, fmt.Errorf("rlew: run truncated after %d of %d bytes: %w", len(out), size, ErrFormat)
		}
		if len(out)+2*int(count) > size {
			return out, fmt.Errorf("rlew: run of %d words overflows %d bytes: %w", count, size, ErrFormat)
		}
		for range count {
			out = binary.LittleEndian.AppendUint16(out, value)
		}
	}

	if len(out) != size {
		return out, fmt.Errorf("rlew: expanded to %d bytes, expected %d: %w", len(out), size, ErrFormat)
	}
	return out, nil
}
