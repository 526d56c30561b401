// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport renders the results of a benchseries.Builder as
// text, CSV, JSON and HTML reports.
package benchreport

import (
	"encoding/json"
	"io"
	"math"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
)

// A Fit summarizes one fitted series.
type Fit struct {
	Label     string `json:"label"`
	Algorithm string `json:"algorithm"`

	// Averaged is set for the averaged series of a group, and
	// Members is the number of series in that group.
	Averaged bool `json:"averaged,omitempty"`
	Members  int  `json:"members,omitempty"`

	Model        benchmath.Kind `json:"model"`
	Equation     string         `json:"equation"`
	Coefficients []float64      `json:"coefficients"`
	// RSquared is nil when it is undefined, as for a series whose
	// times are all equal.
	RSquared *float64 `json:"r_squared,omitempty"`

	NMin    int `json:"n_min"`
	NMax    int `json:"n_max"`
	Samples int `json:"samples"`

	// TimeAtMax and MemAtMax are the measurements at NMax, in
	// nanoseconds and bytes.
	TimeAtMax float64  `json:"time_at_max_ns"`
	MemAtMax  *float64 `json:"mem_at_max_bytes,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// A Skip is an input or group left out of the results.
type Skip struct {
	Label string `json:"label"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error"`
}

// A Summary is the serializable form of a benchseries.Result.
type Summary struct {
	Series   []Fit  `json:"series"`
	Averages []Fit  `json:"averages"`
	Skipped  []Skip `json:"skipped,omitempty"`
}

// NewSummary summarizes r.
func NewSummary(r *benchseries.Result) *Summary {
	sum := &Summary{Series: []Fit{}, Averages: []Fit{}}
	for _, s := range r.Series {
		sum.Series = append(sum.Series, newFit(s))
	}
	for _, a := range r.Averages {
		f := newFit(a)
		for _, g := range r.Groups {
			if g.Algorithm == a.Algorithm {
				f.Members = len(g.Members)
			}
		}
		sum.Averages = append(sum.Averages, f)
	}
	for _, sk := range r.Skipped {
		sum.Skipped = append(sum.Skipped, Skip{Label: sk.Label, Path: sk.Path, Error: sk.Err.Error()})
	}
	return sum
}

func newFit(s *benchseries.Series) Fit {
	f := Fit{
		Label:     s.Label,
		Algorithm: s.Algorithm,
		Averaged:  s.Averaged,
		Equation:  s.Equation(),
		Samples:   len(s.Samples),
	}
	f.NMin, f.NMax = s.NRange()
	if n := len(s.Samples); n > 0 {
		last := s.Samples[n-1]
		f.TimeAtMax = last.TMean
		if last.HasMem {
			mem := last.Mem
			f.MemAtMax = &mem
		}
	}
	if m := s.Model(); m != nil {
		f.Model = m.Kind
		f.Coefficients = append([]float64(nil), m.Coefficients...)
		if !math.IsNaN(m.RSquared) && !math.IsInf(m.RSquared, 0) {
			r2 := m.RSquared
			f.RSquared = &r2
		}
		for _, w := range m.Warnings {
			f.Warnings = append(f.Warnings, w.Error())
		}
	}
	return f
}

// JSON writes the summary of r to w as indented JSON.
func JSON(w io.Writer, r *benchseries.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummary(r))
}

// CSVName returns the file name of the averaged samples of algorithm.
func CSVName(algorithm string) string {
	return algorithm + benchseries.AverageSuffix + ".csv"
}

// CSV writes the samples of the averaged series avg to w in the
// measurement file format, so that it can be read back as an input.
func CSV(w io.Writer, avg *benchseries.Series) error {
	return benchfmt.Write(w, avg.Samples)
}
