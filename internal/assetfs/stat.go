// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package assetfs

import (
	"io/fs"
	"time"
)

func (n *node) Name() string { return n.name }
func (n *node) IsDir() bool  { return n.dir }
func (n *node) Sys() any     { return n.f.Sys }

func (n *node) Size() int64 {
	if n.dir {
		return 0
	}
	return n.f.Size
}

func (n *node) Mode() fs.FileMode {
	if n.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

func (n *node) ModTime() time.Time {
	if n.dir {
		return n.modTime
	}
	return n.f.ModTime
}

var _ fs.FileInfo = new(node) // check satisfies interface
