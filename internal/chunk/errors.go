// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package chunk holds the pieces shared by every archive reader:
// offset tables, the span resolver that infers a chunk's length from the next
// present offset, bounds-checked slicing of data files and the error values.
package chunk

import "errors"

var (
	ErrFormat  = errors.New("malformed archive")
	ErrBounds  = errors.New("chunk outside data file")
	ErrSparse  = errors.New("sparse chunk has no data")
	ErrNotAPic = errors.New("chunk is not a picture")
)
