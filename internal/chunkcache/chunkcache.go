// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package chunkcache keeps recently decoded assets in memory,
// admitting and evicting them by TinyLFU frequency estimates.
package chunkcache

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-tinylfu"
)

// AssetSize is the typical decoded asset, a 64x64 wall, used to turn a byte budget into an entry count.
const AssetSize = 4096

// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu  sync.Mutex
	lfu *tinylfu.T[string, []byte]

	hits, misses, evictions atomic.Int64
}

// New makes a cache holding about budget bytes.
func New(budget int) *Cache {
	n := max(budget/AssetSize, 1)
	c := new(Cache)
	c.lfu = tinylfu.New[string, []byte](n, n*10, xxhash.Sum64String, tinylfu.OnEvict(c.evict))
	return c
}

func (c *Cache) evict(string, []byte) { c.evictions.Add(1) }

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	b, ok := c.lfu.Get(key)
	c.mu.Unlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return b, ok
}

// Add stores b under key. The cache keeps b, so the caller must not modify it.
func (c *Cache) Add(key string, b []byte) {
	c.mu.Lock()
	c.lfu.Add(key, b)
	c.mu.Unlock()
}

// Load returns the cached value for key, or calls load and caches its result.
// Errors are not cached.
func (c *Cache) Load(key string, load func() ([]byte, error)) ([]byte, error) {
	if b, ok := c.Get(key); ok {
		return b, nil
	}
	b, err := load()
	if err != nil {
		return nil, err
	}
	c.Add(key, b)
	return b, nil
}

type Stats struct {
	Hits, Misses, Evictions int64
}

func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Evictions: c.evictions.Load()}
}
