// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package assetfs

import (
	"io"
	"io/fs"
)

type lister struct {
	*node
	progress int
}

// Tricky partial-listing semantics
func (l *lister) ReadDir(count int) ([]fs.DirEntry, error) {
	n := len(l.children) - l.progress
	if n == 0 && count > 0 {
		return nil, io.EOF
	}
	if count > 0 && n > count {
		n = count
	}
	list := make([]fs.DirEntry, n)
	for i := range list {
		list[i] = fs.FileInfoToDirEntry(&l.children[l.progress+i])
	}
	l.progress += n
	return list, nil
}

func (l *lister) Stat() (fs.FileInfo, error) { return l.node, nil }
func (l *lister) Close() error               { return nil }
func (l *lister) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: l.path, Err: fs.ErrInvalid}
}

var _ fs.ReadDirFile = new(lister) // check satisfies interface
