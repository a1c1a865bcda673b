// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package assetfs is a read-only [fs.FS] whose tree is known in advance
// but whose file contents are produced on demand.
package assetfs

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

// File describes one regular file. Load must return exactly Size bytes.
type File struct {
	Size    int64
	ModTime time.Time
	Sys     any
	Load    func() ([]byte, error)
}

type FS []node

// Make builds the tree from a map of slash-separated paths.
// Directories are implied by the paths and take the newest ModTime of their contents.
func Make(files map[string]File) FS {
	kids := make(map[string][]string)
	isDir := map[string]bool{".": true}
	dirTimes := make(map[string]time.Time)
	for name, f := range files {
		if !fs.ValidPath(name) || name == "." {
			panic("invalid path in file tree: " + name)
		}
		for child := name; child != "."; child = path.Dir(child) {
			parent := path.Dir(child)
			if dirTimes[parent].Before(f.ModTime) {
				dirTimes[parent] = f.ModTime
			}
			if child == name {
				kids[parent] = append(kids[parent], child)
			} else if !isDir[child] {
				isDir[child] = true
				kids[parent] = append(kids[parent], child)
			}
		}
	}
	for d := range isDir {
		if _, ok := files[d]; ok {
			panic("file tree uses a path as both file and directory: " + d)
		}
	}

	list := FS{{path: ".", name: ".", dir: true, modTime: dirTimes["."]}}
	firsts := []int{0}
	for i := 0; i < len(list); i++ {
		if !list[i].dir {
			continue
		}
		children := kids[list[i].path]
		slices.Sort(children)
		firsts[i] = len(list)
		for _, c := range children {
			n := node{path: c, name: path.Base(c)}
			if f, ok := files[c]; ok {
				n.f = f
			} else {
				n.dir, n.modTime = true, dirTimes[c]
			}
			list = append(list, n)
			firsts = append(firsts, 0)
		}
		list[i].nchild = len(children)
	}
	for i := range list {
		if list[i].nchild > 0 {
			list[i].children = list[firsts[i]:][:list[i].nchild]
		}
	}
	return list
}

// Open looks up a file and, for a regular file, loads its contents.
// A load failure is reported here rather than on Read.
// Open is safe for concurrent use if the Load functions are.
func (l FS) Open(name string) (_ fs.File, err error) {
	defer func() {
		if err != nil {
			err = &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}()

	n, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	if n.dir {
		return &lister{node: n}, nil
	}
	b, err := n.f.Load()
	if err != nil {
		return nil, err
	}
	if int64(len(b)) != n.f.Size {
		return nil, fmt.Errorf("decoded %d bytes, expected %d", len(b), n.f.Size)
	}
	return &openFile{node: n, Reader: bytes.NewReader(b)}, nil
}

func (l FS) Stat(name string) (_ fs.FileInfo, err error) {
	n, err := l.lookup(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	return n, nil
}

func (l FS) lookup(name string) (*node, error) {
	if !fs.ValidPath(name) {
		return nil, fs.ErrInvalid
	}
	n := &l[0]
	if name == "." {
		return n, nil
	}
	for c := range strings.SplitSeq(name, "/") {
		at, ok := slices.BinarySearchFunc(n.children, c, func(e node, s string) int { return strings.Compare(e.name, s) })
		if !ok {
			return nil, fs.ErrNotExist
		}
		n = &n.children[at]
	}
	return n, nil
}

// String lists every path in the tree, breadth first.
func (l FS) String() string {
	var s []string
	for i := range l {
		s = append(s, l[i].Mode().String()+" "+l[i].path)
	}
	return strings.Join(s, "\n")
}

type node struct {
	path, name string
	dir        bool
	modTime    time.Time
	f          File
	nchild     int
	children   []node
}

type openFile struct {
	*node
	*bytes.Reader
}

func (f *openFile) Stat() (fs.FileInfo, error) { return f.node, nil }
func (f *openFile) Close() error               { return nil }

// Size is both a FileInfo and a bytes.Reader method, and they agree
func (f *openFile) Size() int64 { return f.node.Size() }
