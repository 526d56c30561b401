// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries classifies, fits and aggregates series of
// benchmark measurements.
//
// A Series is the measurements of one benchmark run across input
// sizes. Series are classified by algorithm (see benchproc.Algorithm),
// fit to a performance model (see benchmath.Fit) and collected into
// Groups. Aggregate merges the members of a Group into one averaged
// series that tolerates runs measured at slightly different sizes.
//
// Builder ties these steps together for a batch of inputs.
package benchseries

import (
	"errors"
	"fmt"
	"sort"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
)

// ErrAlreadyFitted is returned when fitting a Series that already
// carries a model.
var ErrAlreadyFitted = errors.New("series already fitted")

// A Series is a labeled, ordered set of measurements of one benchmark
// run. Its samples are sorted by N, with no repeated N.
//
// A Series is immutable once constructed, except that a model can be
// attached to it exactly once with Fit.
type Series struct {
	// Label identifies the series, typically the stem of the file
	// it was read from.
	Label string

	// Algorithm is the classification of Label.
	Algorithm string

	// Averaged is set for series synthesized by Aggregate.
	Averaged bool

	// Samples are the measurements, in increasing order of N.
	Samples []benchfmt.Sample

	model *benchmath.Model
}

// NewSeries returns a Series of the given samples. The samples are
// copied and sorted by N; a repeated N is an error.
func NewSeries(label, algorithm string, samples []benchfmt.Sample) (*Series, error) {
	ss := append([]benchfmt.Sample(nil), samples...)
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].N < ss[j].N
	})
	for i := 1; i < len(ss); i++ {
		if ss[i].N == ss[i-1].N {
			return nil, fmt.Errorf("series %s: duplicate n=%d", label, ss[i].N)
		}
	}
	return &Series{Label: label, Algorithm: algorithm, Samples: ss}, nil
}

// Fit fits a model of kind k to the series' (N, TMean) samples and
// attaches it to s. It returns ErrAlreadyFitted if s already has a
// model.
func (s *Series) Fit(k benchmath.Kind, opts benchmath.FitOptions) error {
	if s.model != nil {
		return ErrAlreadyFitted
	}
	m, err := benchmath.Fit(k, s.Points(), opts)
	if err != nil {
		return fmt.Errorf("series %s: %w", s.Label, err)
	}
	s.model = m
	return nil
}

// Model returns the fitted model of s, or nil if s has not been fit.
func (s *Series) Model() *benchmath.Model {
	return s.model
}

// Equation returns the rendered equation of the fitted model, or ""
// if s has not been fit.
func (s *Series) Equation() string {
	if s.model == nil {
		return ""
	}
	return s.model.Equation()
}

// Points returns the samples of s as fitting points.
func (s *Series) Points() []benchmath.Point {
	pts := make([]benchmath.Point, len(s.Samples))
	for i, smp := range s.Samples {
		pts[i] = benchmath.Point{N: float64(smp.N), T: smp.TMean, Stdev: smp.TStdev}
	}
	return pts
}

// NRange returns the smallest and largest N of s.
// It returns 0, 0 if s has no samples.
func (s *Series) NRange() (lo, hi int) {
	if len(s.Samples) == 0 {
		return 0, 0
	}
	return s.Samples[0].N, s.Samples[len(s.Samples)-1].N
}

// HasMem reports whether any sample of s records memory usage.
func (s *Series) HasMem() bool {
	for _, smp := range s.Samples {
		if smp.HasMem {
			return true
		}
	}
	return false
}

// nearest returns the index of the sample whose N is closest to n.
// Ties go to the smaller N. s must have at least one sample.
func (s *Series) nearest(n int) int {
	i := sort.Search(len(s.Samples), func(i int) bool {
		return s.Samples[i].N >= n
	})
	if i == len(s.Samples) {
		return i - 1
	}
	if i > 0 && n-s.Samples[i-1].N <= s.Samples[i].N-n {
		return i - 1
	}
	return i
}
