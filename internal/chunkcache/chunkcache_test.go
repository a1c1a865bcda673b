// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package chunkcache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestLoad(t *testing.T) {
	c := New(10 * AssetSize)
	calls := 0
	load := func() ([]byte, error) {
		calls++
		return []byte("wall"), nil
	}
	for range 3 {
		b, err := c.Load("walls/000", load)
		if err != nil || string(b) != "wall" {
			t.Fatalf("got %q, %v", b, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected one load, got %d", calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestLoadError(t *testing.T) {
	c := New(AssetSize)
	bad := errors.New("corrupt")
	for range 2 {
		if _, err := c.Load("x", func() ([]byte, error) { return nil, bad }); err != bad {
			t.Errorf("expected the load error, got %v", err)
		}
	}
	if _, ok := c.Get("x"); ok {
		t.Error("an error was cached")
	}
}

func TestConcurrent(t *testing.T) {
	c := New(4 * AssetSize)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprint(i % 16)
				b, err := c.Load(key, func() ([]byte, error) { return []byte(key), nil })
				if err != nil || string(b) != key {
					t.Errorf("goroutine %d: got %q for %q", g, b, key)
					return
				}
			}
		}()
	}
	wg.Wait()
	if s := c.Stats(); s.Hits+s.Misses != 8*200 {
		t.Errorf("expected %d lookups, got %+v", 8*200, s)
	}
}
