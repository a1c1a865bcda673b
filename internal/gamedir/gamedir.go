// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package gamedir finds and opens the data files of one game in a directory.
// Names are matched without regard to case, as DOS would,
// and a file may also be shipped xz-compressed with an extra ".xz" suffix.
package gamedir

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/therootcompany/xz"
)

type Dir struct {
	fsys  fs.FS
	ext   string
	names map[string]string // upper case → name on disk
}

// New indexes the top level of fsys for files with extension ext, such as "WL6".
func New(fsys fs.FS, ext string) (*Dir, error) {
	list, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	d := &Dir{fsys: fsys, ext: strings.ToUpper(ext), names: make(map[string]string)}
	for _, e := range list {
		if e.Type().IsRegular() {
			d.names[strings.ToUpper(e.Name())] = e.Name()
		}
	}
	return d, nil
}

func (d *Dir) Ext() string { return d.ext }

func (d *Dir) find(base string) (name string, compressed bool, ok bool) {
	want := strings.ToUpper(base) + "." + d.ext
	if name, ok := d.names[want]; ok {
		return name, false, true
	}
	if name, ok := d.names[want+".XZ"]; ok {
		return name, true, true
	}
	return "", false, false
}

// Has reports whether a data file such as "VSWAP" is present.
func (d *Dir) Has(base string) bool {
	_, _, ok := d.find(base)
	return ok
}

// File is a data file open for random access. It must be closed.
type File struct {
	Name    string
	ModTime time.Time
	ra      io.ReaderAt
	size    int64
	close   func() error
}

func (f *File) ReadAt(p []byte, off int64) (int, error) { return f.ra.ReadAt(p, off) }
func (f *File) Size() int64                              { return f.size }
func (f *File) Close() error                             { return f.close() }

// Bytes returns the whole file. For header files, which are read sequentially.
func (f *File) Bytes() ([]byte, error) {
	b := make([]byte, f.size)
	_, err := f.ReadAt(b, 0)
	if err == io.EOF {
		err = nil
	}
	return b, err
}

// Open opens a data file such as "VSWAP".
func (d *Dir) Open(base string) (_ *File, err error) {
	name, compressed, ok := d.find(base)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: base + "." + d.ext, Err: fs.ErrNotExist}
	}
	defer func() {
		if err != nil {
			err = &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}()

	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	ret := &File{Name: name, ModTime: stat.ModTime()}

	if compressed {
		defer f.Close()
		zr, err := xz.NewReader(f, xz.DefaultDictMax)
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompressing: %w", err)
		}
		ret.ra, ret.size, ret.close = bytes.NewReader(b), int64(len(b)), nop
		return ret, nil
	}

	ret.size = stat.Size()
	if osf, ok := f.(*os.File); ok {
		if b, unmap, err := mmap(osf, ret.size); err == nil {
			ret.ra = bytes.NewReader(b)
			ret.close = func() error {
				err := unmap()
				if err2 := f.Close(); err == nil {
					err = err2
				}
				return err
			}
			return ret, nil
		}
	}
	if ra, ok := f.(io.ReaderAt); ok {
		ret.ra, ret.close = ra, f.Close
		return ret, nil
	}

	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	ret.ra, ret.size, ret.close = bytes.NewReader(b), int64(len(b)), nop
	return ret, nil
}

func nop() error { return nil }
