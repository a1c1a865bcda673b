// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"io/fs"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Prefetch decodes every asset once, filling the caches.
// Failures are logged and otherwise ignored.
func (fsys *FS) Prefetch() {
	slog.Info("prefetchStart")
	t := time.Now()
	fsys.prefetch(runtime.NumCPU())
	s := fsys.Stats()
	slog.Info("prefetchStop", "duration", time.Since(t).Truncate(time.Millisecond).String(),
		"hits", s.Hits, "misses", s.Misses, "evictions", s.Evictions)
}

func (fsys *FS) prefetch(concurrency int) {
	files := make(chan string)
	go func() {
		fs.WalkDir(fsys.tree, ".", func(name string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				files <- name
			}
			return nil
		})
		close(files)
	}()

	wg := new(sync.WaitGroup)
	wg.Add(concurrency)
	for range concurrency {
		go func() {
			for name := range files {
				f, err := fsys.Open(name)
				if err != nil {
					slog.Warn("prefetchError", "path", name, "err", err)
					continue
				}
				f.Close()
			}
			wg.Done()
		}()
	}
	wg.Wait()
}
