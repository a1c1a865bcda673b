// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package fingerprint identifies a set of game data files,
// so that decoded assets cached for one release are never served for another.
package fingerprint

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type ID uint64

// A Builder hashes the identifying parts of each data file in turn.
// Header files are small enough to hash whole; for the big data files the size is enough.
type Builder struct {
	h xxhash.Digest
}

func New() *Builder {
	b := new(Builder)
	b.h.Reset()
	return b
}

// Content adds a named file by its bytes.
func (b *Builder) Content(name string, data []byte) {
	b.field(name)
	b.h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(data))))
	b.h.Write(data)
}

// Size adds a named file by its length alone.
func (b *Builder) Size(name string, size int64) {
	b.field(name)
	b.h.Write(binary.LittleEndian.AppendUint64(nil, uint64(size)))
}

func (b *Builder) field(name string) {
	b.h.WriteString(name)
	b.h.Write([]byte{0})
}

func (b *Builder) ID() ID { return ID(b.h.Sum64()) }

func (id ID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

// Key prefixes an asset path with the fingerprint, for use in a cache.
func (id ID) Key(path string) string { return id.String() + "/" + path }
