// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/r1sc/libwolf/internal/assetfs"
	"github.com/r1sc/libwolf/internal/gamemaps"
	"github.com/r1sc/libwolf/internal/imf"
	"github.com/r1sc/libwolf/internal/vgagraph"
	"github.com/r1sc/libwolf/internal/vswap"
)

// listing lays out every asset that can be sized without decoding it:
//
//	maps/NN/plane0 .. plane2  little-endian tile codes
//	maps/NN/name              the map name in UTF-8
//	vga/NNN                   expanded graphics chunks
//	pics/NNN                  pictures, one byte per pixel, row by row
//	vswap/walls/NNN           textures, row by row
//	vswap/sprites/NNN         sprite pages as stored
//	vswap/digi/NNN            8-bit PCM
//	audiot/NNN                sound and music chunks as stored
//	music/NN.imf              type-1 IMF files
func (fsys *FS) listing() map[string]assetfs.File {
	files := make(map[string]assetfs.File)
	add := func(name string, size int, mtime time.Time, sys any, decode func() ([]byte, error)) {
		files[name] = assetfs.File{Size: int64(size), ModTime: mtime, Sys: sys, Load: fsys.loader(name, decode)}
	}
	if a := fsys.maps; a != nil {
		t := fsys.mtimes["GAMEMAPS"]
		for _, slot := range a.Used() {
			r, err := locked(&fsys.mapsMu, func() (*gamemaps.Record, error) { return a.Record(slot) })
			if err != nil {
				slog.Warn("mapRecordError", "slot", slot, "err", err)
				continue
			}
			dir := fmt.Sprintf("maps/%02d/", slot)
			for p := range gamemaps.NumPlanes {
				add(fmt.Sprintf("%splane%d", dir, p), r.PlaneSize(), t, r, func() ([]byte, error) {
					return locked(&fsys.mapsMu, func() ([]byte, error) { return a.Plane(slot, p) })
				})
			}
			name := []byte(r.Name)
			files[dir+"name"] = assetfs.File{Size: int64(len(name)), ModTime: t, Sys: r,
				Load: func() ([]byte, error) { return name, nil }}
		}
	}

	if a := fsys.vga; a != nil {
		t := fsys.mtimes["VGAGRAPH"]
		l := a.Layout()
		for i := range a.Len() {
			if !a.Present(i) {
				continue
			}
			n, err := locked(&fsys.vgaMu, func() (int, error) { return a.ExpandedSize(i) })
			if err != nil {
				slog.Warn("chunkSizeError", "chunk", i, "err", err)
				continue
			}
			add(fmt.Sprintf("vga/%03d", i), n, t, l.Kind(i), func() ([]byte, error) {
				return locked(&fsys.vgaMu, func() ([]byte, error) { return a.ExpandChunk(i) })
			})
			if l.Kind(i) == vgagraph.KindPic {
				size, _ := a.PicSize(i)
				add(fmt.Sprintf("pics/%03d", i), int(size.Width)*int(size.Height), t, size, func() ([]byte, error) {
					p, err := locked(&fsys.vgaMu, func() (*vgagraph.Pic, error) { return a.LoadPic(i) })
					if err != nil {
						return nil, err
					}
					return p.Linear(), nil
				})
			}
		}
	}

	if a := fsys.swap; a != nil {
		t := fsys.mtimes["VSWAP"]
		for i := range a.Walls() {
			if _, err := a.Wall(i); err == nil {
				add(fmt.Sprintf("vswap/walls/%03d", i), vswap.Side*vswap.Side, t, nil, func() ([]byte, error) {
					w, err := a.Wall(i)
					if err != nil {
						return nil, err
					}
					return w.Linear(), nil
				})
			}
		}
		for i := range a.Sprites() {
			if p, err := a.SpritePage(i); err == nil {
				add(fmt.Sprintf("vswap/sprites/%03d", i), len(p), t, nil, func() ([]byte, error) { return a.SpritePage(i) })
			}
		}
		for i := range a.Sounds() {
			pcm, _ := a.Sound(i)
			add(fmt.Sprintf("vswap/digi/%03d", i), len(pcm), t, vswap.PCMRate, func() ([]byte, error) { return a.Sound(i) })
		}
	}

	if a := fsys.audio; a != nil {
		t := fsys.mtimes["AUDIOT"]
		for i := range a.Len() {
			n, err := a.ChunkSize(i)
			if err != nil {
				continue
			}
			add(fmt.Sprintf("audiot/%03d", i), int(n), t, nil, func() ([]byte, error) {
				return locked(&fsys.audioMu, func() ([]byte, error) { return a.Chunk(i) })
			})
		}
		for track := range a.Layout().NumMusic {
			song, err := locked(&fsys.audioMu, func() (*imf.Song, error) {
				b, err := a.Music(track)
				if err != nil {
					return nil, err
				}
				return imf.Parse(b)
			})
			if err != nil {
				slog.Warn("musicParseError", "track", track, "err", err)
				continue
			}
			add(fmt.Sprintf("music/%02d.imf", track), 2+4*len(song.Commands), t, song.Duration(), func() ([]byte, error) {
				var buf bytes.Buffer
				_, err := song.WriteTo(&buf)
				return buf.Bytes(), err
			})
		}
	}
	return files
}

func locked[T any](mu *sync.Mutex, f func() (T, error)) (T, error) {
	mu.Lock()
	defer mu.Unlock()
	return f()
}
