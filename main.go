// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Command libwolf presents the assets of a Wolfenstein 3-D data directory as files.
//
//	libwolf <gamedir> [ls [pattern] | cat <path> | extract <pattern> <dest> | serve <addr>]
//
// WOLFEXT selects the data file extension (WL6), WOLFMB the memory cache size in MiB (64)
// and WOLFCACHE a directory to keep decoded assets between runs.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/r1sc/libwolf/internal/audiot"
	"github.com/r1sc/libwolf/internal/gamedir"
	"github.com/r1sc/libwolf/internal/vgagraph"
)

const usage = "usage: libwolf <gamedir> [ls [pattern] | cat <path> | extract <pattern> <dest> | serve <addr>]"

var errUsage = errors.New(usage)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	dir, err := gamedir.New(os.DirFS(args[0]), dataExt)
	if err != nil {
		return err
	}
	fsys, err := Wrapper(dir, Options{
		CacheBytes:  memLimit,
		CachePath:   cachePath,
		Layout:      vgagraph.WL6,
		AudioLayout: audiot.WL6,
	})
	if err != nil {
		return err
	}
	defer fsys.Close()

	cmd, args := "ls", args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch {
	case cmd == "ls" && len(args) <= 1:
		pattern := "**"
		if len(args) == 1 {
			pattern = args[0]
		}
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("bad pattern %q", pattern)
		}
		return dumpFS(os.Stdout, fsys, pattern)
	case cmd == "cat" && len(args) == 1:
		b, err := fs.ReadFile(fsys, args[0])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(b)
		return err
	case cmd == "extract" && len(args) == 2:
		return extract(fsys, args[0], args[1])
	case cmd == "serve" && len(args) == 1:
		go fsys.Prefetch()
		slog.Info("serve", "addr", args[0])
		return http.ListenAndServe(args[0], http.FileServerFS(fsys))
	default:
		return errUsage
	}
}

// extract copies the files matching pattern into dest, keeping their paths.
func extract(fsys fs.FS, pattern, dest string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad pattern %q", pattern)
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	for _, m := range matches {
		b, err := fs.ReadFile(fsys, m)
		if err != nil {
			slog.Warn("extractError", "path", m, "err", err)
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(m))
		if err := os.MkdirAll(filepath.Join(dest, filepath.FromSlash(path.Dir(m))), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, b, 0o644); err != nil {
			return err
		}
	}
	slog.Info("extractDone", "pattern", pattern, "files", len(matches))
	return nil
}
