// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"io"

	"github.com/gocarina/gocsv"
)

// outRow and outRowMem are the on-disk forms of a Sample written by
// Write.
type outRow struct {
	N      int     `csv:"n"`
	TMean  float64 `csv:"t_mean"`
	TStdev float64 `csv:"t_stdev"`
}

type outRowMem struct {
	outRow
	Mem float64 `csv:"mem"`
}

// Write writes samples to w as a measurement file that Read accepts.
// Quantiles are not written. The mem column is written only if some
// sample has memory data; samples without it are then written with
// mem 0.
func Write(w io.Writer, samples []Sample) error {
	hasMem := false
	for _, s := range samples {
		hasMem = hasMem || s.HasMem
	}
	if !hasMem {
		rows := make([]*outRow, len(samples))
		for i, s := range samples {
			rows[i] = &outRow{N: s.N, TMean: s.TMean, TStdev: s.TStdev}
		}
		return gocsv.Marshal(rows, w)
	}
	rows := make([]*outRowMem, len(samples))
	for i, s := range samples {
		rows[i] = &outRowMem{outRow{N: s.N, TMean: s.TMean, TStdev: s.TStdev}, s.Mem}
	}
	return gocsv.Marshal(rows, w)
}
