// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package chunk

import (
	"bytes"
	"errors"
	"testing"
)

func TestRead24Sparse(t *testing.T) {
	head := []byte{
		0x00, 0x00, 0x00,
		0xff, 0xff, 0xff,
		0x10, 0x00, 0x00,
		0xff, 0xff, 0xff,
		0x30, 0x01, 0x00,
	}
	tab, err := Read24(bytes.NewReader(head), 5)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 4 {
		t.Errorf("expected 4 chunks, got %d", tab.Len())
	}

	expectSpan(t, tab, 0, 0, 0x10, nil)
	expectSpan(t, tab, 1, 0, 0, ErrSparse)
	expectSpan(t, tab, 2, 0x10, 0x120, nil) // skips the absent chunk 3
	expectSpan(t, tab, 3, 0, 0, ErrSparse)
	expectSpan(t, tab, 4, 0, 0, ErrBounds)
	expectSpan(t, tab, -1, 0, 0, ErrBounds)
}

func TestRead24Short(t *testing.T) {
	_, err := Read24(bytes.NewReader(make([]byte, 8)), 3)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestRead32(t *testing.T) {
	head := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x20, 0x00, 0x00, 0x00,
	}
	tab, err := Read32(bytes.NewReader(head), 4)
	if err != nil {
		t.Fatal(err)
	}
	expectSpan(t, tab, 0, 0, 8, nil)
	expectSpan(t, tab, 1, 8, 0, nil) // zero-length run, not a sentinel
	expectSpan(t, tab, 2, 8, 0x18, nil)

	_, err = Read32(bytes.NewReader(head), 5)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestReadAll32(t *testing.T) {
	tab, err := ReadAll32(bytes.NewReader([]byte{1, 0, 0, 0, 9, 0, 0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	expectSpan(t, tab, 0, 1, 8, nil)

	_, err = ReadAll32(bytes.NewReader([]byte{1, 0, 0, 0, 9, 0}))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestSpanBackwards(t *testing.T) {
	tab := Table{At(0x40), At(0x20)}
	expectSpan(t, tab, 0, 0, 0, ErrBounds)
}

func TestSpanNoEnd(t *testing.T) {
	tab := Table{At(0), At(4), Absent}
	expectSpan(t, tab, 1, 0, 0, ErrBounds)
}

func TestSlice(t *testing.T) {
	data := bytes.NewReader([]byte("abcdefgh"))
	tab := Table{At(2), At(5), At(9)}

	got, err := tab.Read(data, 0)
	if err != nil || string(got) != "cde" {
		t.Errorf("expected cde, got %q %v", got, err)
	}

	_, err = tab.Read(data, 1) // runs one byte past the end
	if !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}

	for _, c := range []struct{ off, n int64 }{{-1, 1}, {0, -1}, {9, 0}, {4, 5}} {
		if _, err := Slice(data, data.Size(), c.off, c.n); !errors.Is(err, ErrBounds) {
			t.Errorf("Slice(%d, %d): expected ErrBounds, got %v", c.off, c.n, err)
		}
	}
	if p, err := Slice(data, data.Size(), 8, 0); err != nil || len(p) != 0 {
		t.Errorf("empty slice at the end should succeed, got %q %v", p, err)
	}
}

func expectSpan(t *testing.T, tab Table, i int, off, n int64, wantErr error) {
	t.Helper()
	gotOff, gotN, err := tab.Span(i)
	if wantErr != nil {
		if !errors.Is(err, wantErr) {
			t.Errorf("Span(%d): expected %v, got %v", i, wantErr, err)
		}
		return
	}
	if err != nil {
		t.Errorf("Span(%d): %v", i, err)
		return
	}
	if gotOff != off || gotN != n {
		t.Errorf("Span(%d): expected (%#x, %#x) got (%#x, %#x)", i, off, n, gotOff, gotN)
	}
}
