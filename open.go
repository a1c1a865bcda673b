// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"io"
	"io/fs"

	"github.com/r1sc/libwolf/internal/gamedir"
)

// Open decodes the named asset. Decoding errors are returned as an [fs.PathError].
func (fsys *FS) Open(name string) (fs.File, error) {
	return fsys.tree.Open(name)
}

func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	return fsys.tree.Stat(name)
}

var (
	_ fs.FS     = new(FS)
	_ fs.StatFS = new(FS)
)

// reader reads a header file sequentially from the start.
func reader(f *gamedir.File) io.Reader {
	return io.NewSectionReader(f, 0, f.Size())
}
