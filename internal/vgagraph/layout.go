// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package vgagraph

// Layout gives the chunk ranges of one game's graphics archive,
// as generated into the game's GFXV header by IGRAB.
type Layout struct {
	NumChunks int
	NumFonts  int
	NumPics   int
	NumTile8  int
	NumTile8M int

	StartFont    int
	StartPics    int
	StartTile8   int
	StartTile8M  int
	StartTile16  int
	StartTile16M int
	StartTile32  int
	StartTile32M int
	StartExterns int
}

// WL6 is the layout of the registered Wolfenstein 3-D, version 1.4.
var WL6 = Layout{
	NumChunks: 149,
	NumFonts:  2,
	NumPics:   132,
	NumTile8:  72,

	StartFont:    1,
	StartPics:    3,
	StartTile8:   135,
	StartTile8M:  136,
	StartTile16:  136,
	StartTile16M: 136,
	StartTile32:  136,
	StartTile32M: 136,
	StartExterns: 136,
}

type Kind int

const (
	KindPicTable Kind = iota
	KindFont
	KindPic
	KindTile8
	KindTile8M
	KindTile16
	KindTile16M
	KindTile32
	KindTile32M
	KindExtern
)

var kindNames = [...]string{"pictable", "font", "pic", "tile8", "tile8m", "tile16", "tile16m", "tile32", "tile32m", "extern"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (l Layout) Kind(chunk int) Kind {
	switch {
	case chunk == 0:
		return KindPicTable
	case chunk < l.StartPics:
		return KindFont
	case chunk < l.StartPics+l.NumPics:
		return KindPic
	case chunk < l.StartTile8:
		return KindExtern // masked pics and sprites, which this engine never used
	case chunk < l.StartTile8M:
		return KindTile8
	case chunk < l.StartTile16:
		return KindTile8M
	case chunk < l.StartTile16M:
		return KindTile16
	case chunk < l.StartTile32:
		return KindTile16M
	case chunk < l.StartTile32M:
		return KindTile32
	case chunk < l.StartExterns:
		return KindTile32M
	default:
		return KindExtern
	}
}

const (
	block     = 64  // one 8x8 tile, a byte per pixel
	maskBlock = 128 // the same with a mask byte per pixel
)

// implicitSize is the expanded size of a tile chunk, which is not stored in the archive.
// ok is false for every other kind of chunk.
func (l Layout) implicitSize(chunk int) (n int, ok bool) {
	switch l.Kind(chunk) {
	case KindTile8:
		return block * l.NumTile8, true
	case KindTile8M:
		return maskBlock * l.NumTile8M, true
	case KindTile16:
		return block * 4, true
	case KindTile16M:
		return maskBlock * 4, true
	case KindTile32:
		return block * 16, true
	case KindTile32M:
		return maskBlock * 16, true
	default:
		return 0, false
	}
}
