// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
)

// ErrNoAverage is returned by Aggregate when no member of a group
// contributes a sample at any candidate input size.
var ErrNoAverage = errors.New("no averaged samples")

// DefaultTolerance is the default fraction of a series' N range within
// which a sample is accepted as matching a candidate input size.
const DefaultTolerance = 0.01

// AverageSuffix is appended to an algorithm to label its averaged series.
const AverageSuffix = "_average"

// AggregateOptions configures Aggregate.
type AggregateOptions struct {
	// Model is the model kind the averaged series is fit with.
	Model benchmath.Kind

	// Fit configures the refit of the averaged series.
	Fit benchmath.FitOptions

	// Tolerance is the fraction of each member's N range within
	// which its nearest sample is accepted for a candidate N. If
	// zero, DefaultTolerance is used.
	Tolerance float64
}

// Aggregate merges the members of g into one averaged series and fits
// it with opts.Model.
//
// If g has a single fitted member, the result carries that member's
// samples and model unchanged. Otherwise the samples are those of
// Average. If no samples survive averaging, Aggregate returns
// ErrNoAverage.
func Aggregate(g *Group, opts AggregateOptions) (*Series, error) {
	tol := opts.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	avg := &Series{
		Label:     g.Algorithm + AverageSuffix,
		Algorithm: g.Algorithm,
		Averaged:  true,
	}
	if len(g.Members) == 1 && g.Members[0].model != nil {
		only := g.Members[0]
		avg.Samples = append([]benchfmt.Sample(nil), only.Samples...)
		avg.model = only.model
		return avg, nil
	}

	avg.Samples = Average(g, tol)
	if len(avg.Samples) == 0 {
		return nil, fmt.Errorf("group %s: %w", g.Algorithm, ErrNoAverage)
	}
	if err := avg.Fit(opts.Model, opts.Fit); err != nil {
		return nil, fmt.Errorf("group %s: %w", g.Algorithm, err)
	}
	return avg, nil
}

// Average computes the averaged samples of the members of g.
//
// The candidate input sizes are those common to every member, or, if
// the members share none, every size any member has. For each
// candidate n, each member contributes the sample whose N is nearest
// n, provided it lies within tolerance times that member's N range
// (max N - min N). Contributed samples are merged into one: TMean and
// Mem are averaged, and TStdev is the root mean square of the
// contributed standard deviations. Candidates with no contributions
// are dropped.
func Average(g *Group, tolerance float64) []benchfmt.Sample {
	var members []*Series
	for _, s := range g.Members {
		if len(s.Samples) > 0 {
			members = append(members, s)
		}
	}
	if len(members) == 0 {
		return nil
	}

	var out []benchfmt.Sample
	var tMeans, tVars, mems []float64
	for _, n := range candidates(members) {
		tMeans, tVars, mems = tMeans[:0], tVars[:0], mems[:0]
		for _, s := range members {
			smp, ok := s.match(n, tolerance)
			if !ok {
				continue
			}
			tMeans = append(tMeans, smp.TMean)
			tVars = append(tVars, smp.TStdev*smp.TStdev)
			if smp.HasMem {
				mems = append(mems, smp.Mem)
			}
		}
		if len(tMeans) == 0 {
			continue
		}
		a := benchfmt.Sample{
			N:      n,
			TMean:  stats.Mean(tMeans),
			TStdev: math.Sqrt(stats.Mean(tVars)),
		}
		if len(mems) > 0 {
			a.Mem, a.HasMem = stats.Mean(mems), true
		}
		out = append(out, a)
	}
	return out
}

// match returns the sample of s nearest n if it lies within tolerance
// times the N range of s.
func (s *Series) match(n int, tolerance float64) (benchfmt.Sample, bool) {
	lo, hi := s.NRange()
	smp := s.Samples[s.nearest(n)]
	if math.Abs(float64(smp.N-n)) > float64(hi-lo)*tolerance {
		return benchfmt.Sample{}, false
	}
	return smp, true
}

// candidates returns the sorted input sizes shared by every series,
// or the sorted union of their sizes if they share none.
func candidates(members []*Series) []int {
	count := make(map[int]int)
	for _, s := range members {
		for _, smp := range s.Samples {
			count[smp.N]++
		}
	}
	var common, all []int
	for n, c := range count {
		all = append(all, n)
		if c == len(members) {
			common = append(common, n)
		}
	}
	if len(common) == 0 {
		common = all
	}
	sort.Ints(common)
	return common
}
