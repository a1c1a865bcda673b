// Copyright (c) Elliot Nunn
// Licensed under the MIT license

//go:build linux || darwin || freebsd || netbsd || openbsd

package gamedir

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mmap(f *os.File, size int64) ([]byte, func() error, error) {
	if size == 0 {
		return []byte{}, nop, nil
	} else if int64(int(size)) != size {
		return nil, nil, errors.New("file too large to map")
	}
	b, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	unix.Madvise(b, unix.MADV_RANDOM) // chunks are read in table order, not file order
	return b, func() error { return unix.Munmap(b) }, nil
}
