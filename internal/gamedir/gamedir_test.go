// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package gamedir

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

//go:embed testdata
var testdata embed.FS

func TestCaseInsensitive(t *testing.T) {
	fsys := fstest.MapFS{
		"maphead.wl6":  {Data: []byte("head")},
		"GAMEMAPS.WL6": {Data: []byte("maps")},
		"VSWAP.SOD":    {Data: []byte("other game")},
	}
	d, err := New(fsys, "wl6")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Has("MAPHEAD") || !d.Has("gamemaps") || d.Has("VSWAP") {
		t.Error("wrong files found")
	}
	f, err := d.Open("MAPHEAD")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	b, err := f.Bytes()
	if err != nil || string(b) != "head" {
		t.Errorf("got %q, %v", b, err)
	}
	if _, err := d.Open("VSWAP"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestXZ(t *testing.T) {
	sub, err := fs.Sub(testdata, "testdata")
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(sub, "WL6")
	if err != nil {
		t.Fatal(err)
	}
	f, err := d.Open("VSWAP")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	b, err := f.Bytes()
	if err != nil || string(b) != "VSWAP from an xz file" {
		t.Errorf("got %q, %v", b, err)
	}
}

func TestMapped(t *testing.T) {
	dir := t.TempDir()
	want := []byte("a data file on a real disk")
	if err := os.WriteFile(filepath.Join(dir, "AUDIOT.WL6"), want, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "AUDIOHED.WL6"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := New(os.DirFS(dir), "WL6")
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string][]byte{"AUDIOT": want, "AUDIOHED": {}} {
		f, err := d.Open(name)
		if err != nil {
			t.Fatal(err)
		}
		got := make([]byte, 4)
		if f.Size() != int64(len(want)) {
			t.Errorf("%s: size %d", name, f.Size())
		}
		if len(want) > 0 {
			if _, err := f.ReadAt(got, 2); err != nil || string(got) != string(want[2:6]) {
				t.Errorf("%s: ReadAt got %q, %v", name, got, err)
			}
		}
		if err := f.Close(); err != nil {
			t.Error(err)
		}
	}
}
