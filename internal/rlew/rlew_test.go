// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package rlew

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
)

const testTag = 0xfefe

func TestRun(t *testing.T) {
	expectExpand(t, []byte{0x04, 0x00, 0xfe, 0xfe, 0x02, 0x00, 0x03, 0x04}, []byte{0x03, 0x04, 0x03, 0x04})
}

func TestTagAsLiteral(t *testing.T) {
	expectExpand(t, []byte{0x02, 0x00, 0xfe, 0xfe, 0x01, 0x00, 0xfe, 0xfe}, []byte{0xfe, 0xfe})
}

func TestLiterals(t *testing.T) {
	expectExpand(t, []byte{0x04, 0x00, 0x01, 0x02, 0x03, 0x04, 0xff, 0xff}, []byte{0x01, 0x02, 0x03, 0x04})
}

func TestCorrupt(t *testing.T) {
	for _, c := range []struct {
		name string
		in   []byte
	}{
		{"empty", []byte{0x04}},
		{"truncated", []byte{0x04, 0x00, 0x01, 0x02}},
		{"truncated run", []byte{0x04, 0x00, 0xfe, 0xfe, 0x02, 0x00}},
		{"overflow", []byte{0x04, 0x00, 0xfe, 0xfe, 0x03, 0x00, 0x01, 0x01}},
		{"odd size", []byte{0x03, 0x00, 0x01, 0x02, 0x03, 0x04}},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := Expand(c.in, testTag)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 1992))
	for i := range 50 {
		tag := uint16(rng.Uint32())
		raw := mkTestPlane(rng, tag, 2*rng.IntN(4000))
		t.Run(fmt.Sprintf("%d/tag=%#04x/%d bytes", i, tag, len(raw)), func(t *testing.T) {
			got, err := Expand(compress(raw, tag), tag)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, raw) {
				t.Error("bad data")
			}
		})
	}
}

func expectExpand(t *testing.T, in, want []byte) {
	t.Helper()
	got, err := Expand(in, testTag)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("expected % x\n got % x", want, got)
	}
}

func mkTestPlane(rng *rand.Rand, tag uint16, n int) []byte {
	var r []byte
	for len(r) < n {
		w := uint16(rng.IntN(8))
		if rng.IntN(10) == 0 {
			w = uint16(rng.Uint32())
		}
		for range 1 + rng.IntN(20) {
			r = binary.LittleEndian.AppendUint16(r, w)
		}
	}
	return r[:n]
}

// compress encodes runs of three or more words, and any word equal to the tag, as runs
func compress(raw []byte, tag uint16) []byte {
	words := len(raw) / 2
	word := func(i int) uint16 { return binary.LittleEndian.Uint16(raw[2*i:]) }
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(raw)))
	for i := 0; i < words; {
		n := 1
		for i+n < words && n < 0xffff && word(i+n) == word(i) {
			n++
		}
		if n >= 3 || word(i) == tag {
			out = binary.LittleEndian.AppendUint16(out, tag)
			out = binary.LittleEndian.AppendUint16(out, uint16(n))
			out = binary.LittleEndian.AppendUint16(out, word(i))
		} else {
			n = 1
			out = binary.LittleEndian.AppendUint16(out, word(i))
		}
		i += n
	}
	return out
}
