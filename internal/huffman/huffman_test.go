// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1992, 5))
	for i := range 30 {
		raw := mkTestBin(rng, rng.IntN(5000))
		dict, codes := buildDict(raw)
		packed := encode(raw, codes)

		t.Run(fmt.Sprintf("%d/%d bytes", i, len(raw)), func(t *testing.T) {
			got, err := dict.Expand(packed, len(raw))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, raw) {
				t.Error("bad data from Expand")
			}

			all := dict.ExpandAll(packed, len(raw))
			if !bytes.HasPrefix(all, raw) {
				t.Error("bad data from ExpandAll")
			}
			if len(all)-len(raw) > 7 {
				t.Errorf("ExpandAll decoded %d junk bytes from at most 7 padding bits", len(all)-len(raw))
			}
		})
	}
}

func TestExpandShort(t *testing.T) {
	raw := []byte("the quick brown fox")
	dict, codes := buildDict(raw)
	packed := encode(raw, codes)

	got, err := dict.Expand(packed, len(raw)+100)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
	if !bytes.HasPrefix(got, raw) {
		t.Errorf("expected the partial output, got %q", got)
	}
}

func TestExpandAllEmpty(t *testing.T) {
	dict, _ := buildDict(nil)
	if got := dict.ExpandAll(nil, 64); len(got) != 0 {
		t.Errorf("expected nothing, got % x", got)
	}
}

func TestDecoderEndsMidWalk(t *testing.T) {
	// A degenerate tree that needs 9 bits to reach any literal,
	// so a single byte of input runs out before emitting anything.
	var d Dict
	for i := Root - 7; i <= Root; i++ {
		d[i] = Node{Bit0: 256 + uint16(i) - 1, Bit1: 256 + uint16(i) - 1}
	}
	d[Root-8] = Node{Bit0: 'a', Bit1: 'b'}
	if got := d.ExpandAll([]byte{0xff}, 0); len(got) != 0 {
		t.Errorf("expected nothing, got %q", got)
	}
	if got := d.ExpandAll([]byte{0x00, 0x01}, 0); string(got) != "b" {
		t.Errorf("expected %q, got %q", "b", got)
	}
}

func TestReadDict(t *testing.T) {
	dict, _ := buildDict([]byte("hello"))
	var buf []byte
	for _, n := range dict {
		buf = binary.LittleEndian.AppendUint16(buf, n.Bit0)
		buf = binary.LittleEndian.AppendUint16(buf, n.Bit1)
	}

	got, err := ReadDict(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if *got != *dict {
		t.Error("dictionary did not survive a read")
	}

	_, err = ReadDict(bytes.NewReader(buf[:len(buf)-1]))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("short dictionary: expected ErrFormat, got %v", err)
	}

	binary.LittleEndian.PutUint16(buf[8:], 511)
	_, err = ReadDict(bytes.NewReader(buf))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("bad child: expected ErrFormat, got %v", err)
	}
}

func mkTestBin(rng *rand.Rand, n int) []byte {
	r := make([]byte, n)
	for i := range r {
		if rng.IntN(4) == 0 {
			r[i] = byte(rng.Uint32())
		} else {
			r[i] = byte(rng.IntN(16)) // skewed, so codes have different lengths
		}
	}
	return r
}

// buildDict makes a Huffman tree over all 256 byte values, which needs exactly 255 nodes,
// and returns the code for each byte as a string of '0' and '1'.
func buildDict(raw []byte) (*Dict, [256]string) {
	type item struct {
		weight int
		ref    uint16
	}
	queue := make([]item, 256)
	for i := range queue {
		queue[i] = item{weight: 1, ref: uint16(i)}
	}
	for _, b := range raw {
		queue[b].weight++
	}

	d := new(Dict)
	for i := range d {
		slices.SortStableFunc(queue, func(a, b item) int { return a.weight - b.weight })
		a, b := queue[0], queue[1]
		d[i] = Node{Bit0: a.ref, Bit1: b.ref}
		queue = append(queue[2:], item{a.weight + b.weight, 256 + uint16(i)})
	}

	var codes [256]string
	var walk func(ref uint16, prefix string)
	walk = func(ref uint16, prefix string) {
		if ref < 256 {
			codes[ref] = prefix
			return
		}
		walk(d[ref-256].Bit0, prefix+"0")
		walk(d[ref-256].Bit1, prefix+"1")
	}
	walk(256+Root, "")
	return d, codes
}

func encode(raw []byte, codes [256]string) []byte {
	var out []byte
	nbit := 0
	for _, b := range raw {
		for _, c := range codes[b] {
			if nbit%8 == 0 {
				out = append(out, 0)
			}
			if c == '1' {
				out[len(out)-1] |= 1 << (nbit % 8)
			}
			nbit++
		}
	}
	return out
}
