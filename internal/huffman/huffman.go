// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman expands the Huffman-coded chunks of VGAGRAPH.
//
// The dictionary (VGADICT) is a fixed array of 255 nodes, each with a child for a 0 bit
// and a child for a 1 bit. A child below 256 is a literal byte;
// otherwise it is 256 plus the index of another node. Node 254 is the root.
// Bits are consumed from the least significant end of each input byte.
package huffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/r1sc/libwolf/internal/chunk"
)

const (
	NumNodes = 255
	Root     = NumNodes - 1
)

var ErrFormat = chunk.ErrFormat

type Node struct {
	Bit0, Bit1 uint16
}

// Dict is immutable once read, so one Dict can serve any number of Decoders.
type Dict [NumNodes]Node

func ReadDict(r io.Reader) (*Dict, error) {
	var buf [NumNodes * 4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("huffman: dictionary shorter than %d nodes: %w", NumNodes, ErrFormat)
		}
		return nil, err
	}
	d := new(Dict)
	for i := range d {
		d[i].Bit0 = binary.LittleEndian.Uint16(buf[4*i:])
		d[i].Bit1 = binary.LittleEndian.Uint16(buf[4*i+2:])
		if d[i].Bit0 >= 256+NumNodes || d[i].Bit1 >= 256+NumNodes {
			return nil, fmt.Errorf("huffman: node %d points outside the dictionary: %w", i, ErrFormat)
		}
	}
	return d, nil
}

// Decoder walks the tree over a compressed buffer.
// It stops, with io.EOF, when the last bit of the last byte is consumed,
// whether or not the walk has just reached a literal.
type Decoder struct {
	dict *Dict
	src  []byte
	node uint16
	bit  uint
}

func (d *Dict) NewDecoder(src []byte) *Decoder {
	return &Decoder{dict: d, src: src, node: Root}
}

func (z *Decoder) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(z.src) == 0 {
			return n, io.EOF
		}
		b := z.src[0]
		for z.bit < 8 && n < len(p) {
			child := z.dict[z.node].Bit0
			if b&(1<<z.bit) != 0 {
				child = z.dict[z.node].Bit1
			}
			z.bit++
			if child < 256 {
				p[n] = byte(child)
				n++
				z.node = Root
			} else {
				z.node = child - 256
			}
		}
		if z.bit == 8 {
			z.src, z.bit = z.src[1:], 0
		}
	}
	return n, nil
}

// Expand decodes exactly size bytes from src.
// Running out of input first is a length mismatch, and the partial output is returned with the error.
func (d *Dict) Expand(src []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	n, err := io.ReadFull(d.NewDecoder(src), out)
	if err != nil {
		return out[:n], fmt.Errorf("huffman: expanded to %d bytes, expected %d: %w", n, size, ErrFormat)
	}
	return out, nil
}

// ExpandAll decodes until src is exhausted.
// Chunks without a length prefix end this way, possibly with a few junk bytes
// decoded from the padding bits of the final byte.
func (d *Dict) ExpandAll(src []byte, sizeHint int) []byte {
	z := d.NewDecoder(src)
	out := make([]byte, 0, max(sizeHint, 0))
	for {
		if len(out) == cap(out) {
			out = append(out, 0)[:len(out)]
		}
		n, err := z.Read(out[len(out):cap(out)])
		out = out[:len(out)+n]
		if err != nil {
			return out
		}
	}
}
