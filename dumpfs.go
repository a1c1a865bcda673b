// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/r1sc/libwolf/internal/gamemaps"
	"github.com/r1sc/libwolf/internal/vgagraph"
)

// dumpFS lists the assets matching a doublestar pattern such as "pics/*" or "maps/**".
func dumpFS(w io.Writer, fsys fs.FS, pattern string) error {
	const tfmt = "2006-01-02T15:04:05"
	return doublestar.GlobWalk(fsys, pattern, func(p string, d fs.DirEntry) error {
		i, err := d.Info()
		if err != nil {
			fmt.Fprintf(w, "%s\n    dump error: %s\n", p, err)
			return nil
		}
		fmt.Fprintf(w, "%v %8d %s %s", i.Mode(), i.Size(), i.ModTime().Format(tfmt), p)
		if s := describe(i.Sys()); s != "" {
			fmt.Fprintf(w, "  (%s)", s)
		}
		fmt.Fprintln(w)
		return nil
	})
}

func describe(sys any) string {
	switch s := sys.(type) {
	case *gamemaps.Record:
		return fmt.Sprintf("%dx%d %q", s.Width, s.Height, s.Name)
	case vgagraph.PicSize:
		return fmt.Sprintf("%dx%d", s.Width, s.Height)
	case vgagraph.Kind:
		return s.String()
	case time.Duration:
		return s.Round(time.Millisecond).String()
	case int:
		return fmt.Sprintf("%d Hz", s)
	default:
		return ""
	}
}
