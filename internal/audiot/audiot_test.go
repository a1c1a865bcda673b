// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package audiot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/r1sc/libwolf/internal/chunk"
	"github.com/r1sc/libwolf/internal/wolftest"
)

var testLayout = Layout{NumSounds: 1, StartPC: 0, StartAdlib: 1, StartDigi: 2, StartMusic: 3, NumMusic: 2}

func TestChunks(t *testing.T) {
	chunks := [][]byte{[]byte("pc"), []byte("adlib"), nil, []byte("song one"), []byte("song two!")}
	head, data := wolftest.Audio(chunks)
	a, err := Open(bytes.NewReader(head), bytes.NewReader(data), testLayout)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != len(chunks) {
		t.Errorf("expected %d chunks, got %d", len(chunks), a.Len())
	}
	for i, want := range chunks {
		got, err := a.Chunk(i)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("chunk %d: expected %q, got %q", i, want, got)
		}
		if n, err := a.ChunkSize(i); err != nil || n != int64(len(want)) {
			t.Errorf("chunk %d: ChunkSize %d, %v", i, n, err)
		}
	}
	if got, err := a.Music(1); err != nil || string(got) != "song two!" {
		t.Errorf("Music(1) = %q, %v", got, err)
	}
	if _, err := a.Music(2); !errors.Is(err, chunk.ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
	if _, err := a.Chunk(len(chunks)); !errors.Is(err, chunk.ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestTruncatedData(t *testing.T) {
	head, data := wolftest.Audio([][]byte{[]byte("abc"), []byte("defg")})
	a, err := Open(bytes.NewReader(head), bytes.NewReader(data[:5]), testLayout)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Chunk(0); err != nil {
		t.Errorf("first chunk is intact: %v", err)
	}
	if _, err := a.Chunk(1); !errors.Is(err, chunk.ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestPartialHeader(t *testing.T) {
	head, data := wolftest.Audio([][]byte{[]byte("abc")})
	_, err := Open(bytes.NewReader(head[:len(head)-1]), bytes.NewReader(data), testLayout)
	if !errors.Is(err, chunk.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
