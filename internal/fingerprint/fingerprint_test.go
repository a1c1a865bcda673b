// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package fingerprint

import "testing"

func mk(head string, size int64) ID {
	b := New()
	b.Content("VGAHEAD", []byte(head))
	b.Size("VGAGRAPH", size)
	return b.ID()
}

func TestDistinct(t *testing.T) {
	a := mk("\x00\x00\x00", 100)
	if a != mk("\x00\x00\x00", 100) {
		t.Error("fingerprint is not deterministic")
	}
	if a == mk("\x00\x00\x01", 100) {
		t.Error("header content ignored")
	}
	if a == mk("\x00\x00\x00", 101) {
		t.Error("data size ignored")
	}
}

func TestFieldsDoNotRunTogether(t *testing.T) {
	x, y := New(), New()
	x.Content("AB", []byte("C"))
	y.Content("A", []byte("BC"))
	if x.ID() == y.ID() {
		t.Error("name and content are ambiguous")
	}
}

func TestKey(t *testing.T) {
	if got := ID(0xabc).Key("pics/003"); got != "0000000000000abc/pics/003" {
		t.Errorf("got %q", got)
	}
}
