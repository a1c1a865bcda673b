// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/r1sc/libwolf/internal/assetdb"
	"github.com/r1sc/libwolf/internal/assetfs"
	"github.com/r1sc/libwolf/internal/audiot"
	"github.com/r1sc/libwolf/internal/chunkcache"
	"github.com/r1sc/libwolf/internal/fingerprint"
	"github.com/r1sc/libwolf/internal/gamedir"
	"github.com/r1sc/libwolf/internal/gamemaps"
	"github.com/r1sc/libwolf/internal/vgagraph"
	"github.com/r1sc/libwolf/internal/vswap"
)

type Options struct {
	CacheBytes  int    // memory for decoded assets
	CachePath   string // directory for decoded assets on disk, or empty
	Layout      vgagraph.Layout
	AudioLayout audiot.Layout
}

// FS presents the decoded assets of one game as a read-only [fs.FS].
// It is safe for concurrent use by multiple goroutines:
// each archive reader is guarded by its own mutex, and VSWAP is immutable once read.
type FS struct {
	tree  assetfs.FS
	id    fingerprint.ID
	cache *chunkcache.Cache
	db    *assetdb.DB // nil if disabled
	files  []*gamedir.File
	mtimes map[string]time.Time

	mapsMu sync.Mutex
	maps   *gamemaps.Archive

	vgaMu sync.Mutex
	vga   *vgagraph.Archive

	swap *vswap.Archive

	audioMu sync.Mutex
	audio   *audiot.Archive
}

// Wrapper opens every archive present in dir. An archive that fails to open is
// left out with a warning, so one damaged file does not hide the others.
func Wrapper(dir *gamedir.Dir, opts Options) (*FS, error) {
	fsys := &FS{cache: chunkcache.New(opts.CacheBytes), mtimes: make(map[string]time.Time)}
	fp := fingerprint.New()
	fp.Content("ext", []byte(dir.Ext()))

	type opener struct {
		names []string
		open  func(files []*gamedir.File) error
	}
	openers := []opener{
		{[]string{"MAPHEAD", "GAMEMAPS"}, func(f []*gamedir.File) (err error) {
			fsys.maps, err = gamemaps.Open(reader(f[0]), f[1])
			return err
		}},
		{[]string{"VGADICT", "VGAHEAD", "VGAGRAPH"}, func(f []*gamedir.File) (err error) {
			fsys.vga, err = vgagraph.Open(reader(f[0]), reader(f[1]), f[2], opts.Layout)
			return err
		}},
		{[]string{"VSWAP"}, func(f []*gamedir.File) (err error) {
			fsys.swap, err = vswap.Open(f[0])
			return err
		}},
		{[]string{"AUDIOHED", "AUDIOT"}, func(f []*gamedir.File) (err error) {
			fsys.audio, err = audiot.Open(reader(f[0]), f[1], opts.AudioLayout)
			return err
		}},
	}

	for _, o := range openers {
		files, err := openAll(dir, o.names)
		if errors.Is(err, errMissing) {
			slog.Info("archiveMissing", "names", o.names)
			continue
		}
		if err == nil {
			err = o.open(files)
		}
		if err != nil {
			slog.Warn("archiveOpenError", "names", o.names, "err", err)
			for _, f := range files {
				f.Close()
			}
			continue
		}
		fsys.files = append(fsys.files, files...)
		for i, f := range files {
			fsys.mtimes[o.names[i]] = f.ModTime
			if dataFiles[o.names[i]] {
				fp.Size(o.names[i], f.Size())
			} else if b, err := f.Bytes(); err == nil {
				fp.Content(o.names[i], b)
			}
		}
	}
	fsys.id = fp.ID()

	if opts.CachePath != "" {
		db, err := assetdb.Open(opts.CachePath, nil)
		if err != nil {
			fsys.Close()
			return nil, err
		}
		fsys.db = db
	}

	fsys.tree = assetfs.Make(fsys.listing())
	slog.Info("gameOpen", "fingerprint", fsys.id, "archives", len(fsys.files))
	return fsys, nil
}

var errMissing = errors.New("archive not present")

// dataFiles are too big to hash, and are identified by size alongside their headers.
var dataFiles = map[string]bool{"GAMEMAPS": true, "VGAGRAPH": true, "VSWAP": true, "AUDIOT": true}

func openAll(dir *gamedir.Dir, names []string) ([]*gamedir.File, error) {
	for _, n := range names {
		if !dir.Has(n) {
			return nil, errMissing
		}
	}
	var files []*gamedir.File
	for _, n := range names {
		f, err := dir.Open(n)
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, nil
}

// loader wraps a decoder with the memory cache and then the disk cache.
func (fsys *FS) loader(name string, decode func() ([]byte, error)) func() ([]byte, error) {
	key := fsys.id.Key(name)
	return func() ([]byte, error) {
		return fsys.cache.Load(key, func() ([]byte, error) {
			if fsys.db != nil {
				if b, ok, err := fsys.db.Get(key); err != nil {
					slog.Warn("assetCacheError", "path", name, "err", err)
				} else if ok {
					return b, nil
				}
			}
			b, err := decode()
			if err != nil {
				slog.Warn("assetDecodeError", "path", name, "err", err)
				return nil, err
			}
			if fsys.db != nil {
				if err := fsys.db.Put(key, b); err != nil {
					slog.Warn("assetCacheError", "path", name, "err", err)
				}
			}
			return b, nil
		})
	}
}

func (fsys *FS) Stats() chunkcache.Stats { return fsys.cache.Stats() }

// Close releases the data files and flushes the disk cache. The FS must not be used afterwards.
func (fsys *FS) Close() error {
	var errs []error
	if fsys.db != nil {
		errs = append(errs, fsys.db.Close())
		fsys.db = nil
	}
	for _, f := range fsys.files {
		errs = append(errs, f.Close())
	}
	fsys.files = nil
	return errors.Join(errs...)
}
