// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"math"
	"os"
	"strconv"
)

var (
	memLimit  int    = calcMemLimit()
	cachePath string = os.Getenv("WOLFCACHE") // empty means no cache on disk
	dataExt   string = calcExt()
)

func calcMemLimit() int {
	if e := os.Getenv("WOLFMB"); e != "" {
		f, err := strconv.ParseFloat(e, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			panic("malformed WOLFMB environment variable, should be a number of megabytes: " + e)
		}
		return int(f * 1024 * 1024)
	}
	return 64 * 1024 * 1024 // fall back on 64MiB
}

func calcExt() string {
	if e := os.Getenv("WOLFEXT"); e != "" {
		return e
	}
	return "WL6"
}
