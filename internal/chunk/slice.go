// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package chunk

import (
	"fmt"
	"io"
)

// Slice reads n bytes at off from a data file of the given size.
// Anything that would reach outside the file is ErrBounds, and nothing is read.
func Slice(r io.ReaderAt, size, off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off > size || n > size-off {
		return nil, fmt.Errorf("%d bytes at %#x in a %d-byte file: %w", n, off, size, ErrBounds)
	}
	buf := make([]byte, n)
	got, err := r.ReadAt(buf, off)
	if got == len(buf) {
		return buf, nil
	}
	if err == io.EOF || err == nil {
		return nil, fmt.Errorf("%d bytes at %#x, file ended after %d: %w", n, off, got, ErrBounds)
	}
	return nil, err
}

// Sized is satisfied by [bytes.Reader], [io.SectionReader] and friends.
type Sized interface {
	io.ReaderAt
	Size() int64
}

// Read resolves chunk i with [Table.Span] and reads it from r.
func (t Table) Read(r Sized, i int) ([]byte, error) {
	off, n, err := t.Span(i)
	if err != nil {
		return nil, err
	}
	return Slice(r, r.Size(), off, n)
}
