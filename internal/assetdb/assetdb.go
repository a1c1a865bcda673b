// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package assetdb persists decoded assets between runs,
// zstd-compressed in a Pebble key-value store.
package assetdb

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
	"github.com/klauspost/compress/zstd"
)

// A DB is safe for concurrent use by multiple goroutines.
type DB struct {
	db  *pebble.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens or creates the store in dir. A nil fsys means the real disk.
func Open(dir string, fsys vfs.FS) (*DB, error) {
	opts := &pebble.Options{FS: fsys}
	if fsys == nil {
		opts.FS = vfs.Default
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("assetdb: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db, enc: enc, dec: dec}, nil
}

// Get returns the asset stored under key, if any.
func (d *DB) Get(key string) ([]byte, bool, error) {
	val, closer, err := d.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	// val is only valid until closer is closed, and DecodeAll copies it out
	b, err := d.dec.DecodeAll(val, nil)
	if err != nil {
		return nil, false, fmt.Errorf("assetdb: %s: %w", key, err)
	}
	return b, true, nil
}

func (d *DB) Put(key string, b []byte) error {
	return d.db.Set([]byte(key), d.enc.EncodeAll(b, nil), pebble.NoSync)
}

func (d *DB) Close() error {
	d.dec.Close()
	return errors.Join(d.enc.Close(), d.db.Flush(), d.db.Close())
}
