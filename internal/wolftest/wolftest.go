// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package wolftest builds small synthetic game data files for tests,
// using the simplest encodings each format allows.
package wolftest

import (
	"encoding/binary"
	"math/bits"
)

// Tag is the RLEW tag written into MAPHEAD.
const Tag = 0xabcd

// Dict is a VGADICT whose tree is perfectly balanced,
// so every byte is coded as its own 8 bits, most significant first.
func Dict() []byte {
	// Heap-ordered: node h has children 2h+1 and 2h+2, and heap slots
	// from 255 up are the leaves 0-255. The root must be node 254.
	var d []byte
	for n := range 255 {
		h := 254 - n
		for _, c := range [2]int{2*h + 1, 2*h + 2} {
			ref := c - 255 // literal
			if c < 255 {
				ref = 256 + 254 - c
			}
			d = binary.LittleEndian.AppendUint16(d, uint16(ref))
		}
	}
	return d
}

// Huffman codes raw with the tree from [Dict].
func Huffman(raw []byte) []byte {
	out := make([]byte, len(raw))
	for i, b := range raw {
		out[i] = bits.Reverse8(b) // the decoder takes the low bit first
	}
	return out
}

// Graph lays out VGAHEAD and VGAGRAPH. A nil chunk is sparse.
// Chunks for which prefixed returns true get the 4-byte expanded-length prefix.
func Graph(chunks [][]byte, prefixed func(i int) bool) (head, graph []byte) {
	for i, c := range chunks {
		if c == nil {
			head = append(head, 0xff, 0xff, 0xff)
			continue
		}
		head = appendU24(head, len(graph))
		if prefixed(i) {
			graph = binary.LittleEndian.AppendUint32(graph, uint32(len(c)))
		}
		graph = append(graph, Huffman(c)...)
	}
	head = appendU24(head, len(graph))
	return head, graph
}

func appendU24(b []byte, v int) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16))
}

// PicTable is the content of graphics chunk 0.
func PicTable(sizes ...[2]int) []byte {
	var b []byte
	for _, s := range sizes {
		b = binary.LittleEndian.AppendUint16(b, uint16(s[0]))
		b = binary.LittleEndian.AppendUint16(b, uint16(s[1]))
	}
	return b
}

// Planar converts a row-major picture to the four-plane layout of the archive.
func Planar(linear []byte, w, h int) []byte {
	out := make([]byte, 0, len(linear))
	for p := range 4 {
		for y := range h {
			for x := p; x < w; x += 4 {
				out = append(out, linear[y*w+x])
			}
		}
	}
	return out
}

// Map is one level for [Maps].
type Map struct {
	Slot   int
	W, H   int
	Name   string
	Planes [3][]byte
}

// Maps lays out MAPHEAD and GAMEMAPS, with every plane stored as RLEW runs inside Carmack literals.
func Maps(maps []Map) (head, data []byte) {
	head = binary.LittleEndian.AppendUint16(nil, Tag)
	slots := make([]uint32, 100)
	data = []byte("TED5v1.0")
	for _, m := range maps {
		var offs [3]uint32
		var lens [3]uint16
		for p, plane := range m.Planes {
			packed := CarmackLiterals(RLEWRuns(plane, Tag))
			offs[p], lens[p] = uint32(len(data)), uint16(len(packed))
			data = append(data, packed...)
		}
		slots[m.Slot] = uint32(len(data))
		for _, o := range offs {
			data = binary.LittleEndian.AppendUint32(data, o)
		}
		for _, l := range lens {
			data = binary.LittleEndian.AppendUint16(data, l)
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(m.W))
		data = binary.LittleEndian.AppendUint16(data, uint16(m.H))
		var name [16]byte
		copy(name[:], m.Name)
		data = append(data, name[:]...)
		data = append(data, "!ID!"...)
	}
	for _, s := range slots {
		head = binary.LittleEndian.AppendUint32(head, s)
	}
	return head, data
}

// RLEWRuns packs runs longer than two words, and every literal tag word, as tagged runs.
func RLEWRuns(raw []byte, tag uint16) []byte {
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(raw)))
	for i := 0; i < len(raw); {
		w := binary.LittleEndian.Uint16(raw[i:])
		n := 1
		for i+2*n < len(raw) && binary.LittleEndian.Uint16(raw[i+2*n:]) == w {
			n++
		}
		if n > 2 || w == tag {
			out = binary.LittleEndian.AppendUint16(out, tag)
			out = binary.LittleEndian.AppendUint16(out, uint16(n))
			out = binary.LittleEndian.AppendUint16(out, w)
		} else {
			n = 1
			out = binary.LittleEndian.AppendUint16(out, w)
		}
		i += 2 * n
	}
	return out
}

// CarmackLiterals stores raw without back-references, escaping the words that look like tags.
func CarmackLiterals(raw []byte) []byte {
	if len(raw)%2 != 0 {
		raw = append(raw, 0)
	}
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(raw)))
	for i := 0; i < len(raw); i += 2 {
		if hi := raw[i+1]; hi == 0xa7 || hi == 0xa8 {
			out = append(out, 0, hi, raw[i])
		} else {
			out = append(out, raw[i], hi)
		}
	}
	return out
}

// VSwap lays out a page file. Each sound is split into pages of pageSize bytes,
// the last one padded with zeroes, so only the descriptor knows its true length.
// A nil wall or sprite is a sparse page.
func VSwap(walls, sprites, sounds [][]byte, pageSize int) []byte {
	pages := append(append([][]byte{}, walls...), sprites...)
	var desc []byte
	first := len(pages)
	for _, s := range sounds {
		desc = binary.LittleEndian.AppendUint16(desc, uint16(len(pages)-first))
		desc = binary.LittleEndian.AppendUint16(desc, uint16(len(s)))
		for off := 0; off < len(s); off += pageSize {
			page := make([]byte, pageSize)
			copy(page, s[off:])
			pages = append(pages, page)
		}
	}
	desc = binary.LittleEndian.AppendUint16(desc, uint16(len(pages)-first))
	desc = binary.LittleEndian.AppendUint16(desc, 0)
	pages = append(pages, desc)

	n := len(pages)
	b := binary.LittleEndian.AppendUint16(nil, uint16(n))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(walls)))
	b = binary.LittleEndian.AppendUint16(b, uint16(len(walls)+len(sprites)))
	pos := len(b) + 6*n
	for _, p := range pages {
		if p == nil {
			b = binary.LittleEndian.AppendUint32(b, 0)
			continue
		}
		b = binary.LittleEndian.AppendUint32(b, uint32(pos))
		pos += len(p)
	}
	for _, p := range pages {
		b = binary.LittleEndian.AppendUint16(b, uint16(len(p)))
	}
	for _, p := range pages {
		b = append(b, p...)
	}
	return b
}

// Post is an opaque run of rows [Start, End) in one sprite column.
type Post struct{ Start, End int }

// Sprite encodes a sprite whose columns start at left.
// The pixels of every post are taken from pixel, in column order.
func Sprite(left int, columns [][]Post, pixel func(x, y int) byte) []byte {
	right := left + len(columns) - 1
	b := binary.LittleEndian.AppendUint16(nil, uint16(left))
	b = binary.LittleEndian.AppendUint16(b, uint16(right))
	var pixels, cmds []byte
	offs := make([]int, len(columns))
	cmdBase := 4 + 2*len(columns)
	for _, col := range columns {
		for _, p := range col {
			cmdBase += p.End - p.Start
		}
	}
	for c, col := range columns {
		offs[c] = cmdBase + len(cmds)
		for _, p := range col {
			cmds = binary.LittleEndian.AppendUint16(cmds, uint16(p.End*2))
			cmds = binary.LittleEndian.AppendUint16(cmds, 0)
			cmds = binary.LittleEndian.AppendUint16(cmds, uint16(p.Start*2))
			for y := p.Start; y < p.End; y++ {
				pixels = append(pixels, pixel(left+c, y))
			}
		}
		cmds = binary.LittleEndian.AppendUint16(cmds, 0)
	}
	for _, o := range offs {
		b = binary.LittleEndian.AppendUint16(b, uint16(o))
	}
	b = append(b, pixels...)
	return append(b, cmds...)
}

// Audio lays out AUDIOHED and AUDIOT. A nil chunk is zero bytes long.
func Audio(chunks [][]byte) (head, data []byte) {
	for _, c := range chunks {
		head = binary.LittleEndian.AppendUint32(head, uint32(len(data)))
		data = append(data, c...)
	}
	head = binary.LittleEndian.AppendUint32(head, uint32(len(data)))
	return head, data
}
