// Copyright (c) Elliot Nunn
// Licensed under the MIT license

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package gamedir

import (
	"errors"
	"os"
)

func mmap(f *os.File, size int64) ([]byte, func() error, error) {
	return nil, nil, errors.ErrUnsupported
}
