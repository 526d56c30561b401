// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchproc"
)

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Models selects the model kind for each algorithm.
	// Algorithms not listed use DefaultModel.
	Models map[string]benchmath.Kind

	// DefaultModel is the model kind for unlisted algorithms.
	DefaultModel benchmath.Kind

	// Exclude lists algorithms whose series are fit but kept out of
	// groups, and therefore out of aggregation.
	Exclude []string

	// Weighted requests inverse-variance weighted fits.
	Weighted bool

	// Tolerance is passed to Aggregate. Zero means DefaultTolerance.
	Tolerance float64

	// Warn, if non-nil, is called with a message for each input
	// or group that is skipped.
	Warn func(format string, args ...interface{})
}

// DefaultBuilderOptions returns the options for the edit distance
// benchmarks this tool was written for: quadratic models for the
// dynamic programming variants and an exponential model for the
// plain recursive one, which is fit and reported per run but left out
// of groups.
func DefaultBuilderOptions() *BuilderOptions {
	return &BuilderOptions{
		Models: map[string]benchmath.Kind{
			"memo":         benchmath.Quadratic,
			"dp":           benchmath.Quadratic,
			"dp_optimized": benchmath.Quadratic,
			"recursive":    benchmath.Exponential,
		},
		DefaultModel: benchmath.Quadratic,
		Exclude:      []string{"recursive"},
		Tolerance:    DefaultTolerance,
	}
}

// A Skipped records an input or group the Builder left out, and why.
type Skipped struct {
	// Label is the series label, or the averaged series label for
	// a group that could not be aggregated.
	Label string
	// Path is the file the input was read from, if any.
	Path string
	Err  error
}

// A Builder runs the classify, fit and group steps over a batch of
// measurement series, then aggregates each group.
//
// Failures are contained per input: a series that cannot be read or
// fit is reported through Warn, recorded in Skipped, and left out of
// all groups, while the remaining inputs are processed normally.
type Builder struct {
	opts     BuilderOptions
	excluded map[string]bool

	series  []*Series
	groups  Groups
	skipped []Skipped

	averages []*Series
	aggDone  bool
	aggSkips []Skipped
}

// NewBuilder returns a Builder configured by opts. It returns an
// error if opts names an unsupported model kind or an out-of-range
// tolerance.
func NewBuilder(opts *BuilderOptions) (*Builder, error) {
	if opts == nil {
		opts = DefaultBuilderOptions()
	}
	if _, err := benchmath.MinPoints(opts.DefaultModel); err != nil {
		return nil, fmt.Errorf("default model: %w", err)
	}
	for alg, k := range opts.Models {
		if _, err := benchmath.MinPoints(k); err != nil {
			return nil, fmt.Errorf("model for %s: %w", alg, err)
		}
	}
	if opts.Tolerance < 0 || opts.Tolerance > 1 {
		return nil, fmt.Errorf("tolerance %v out of range [0, 1]", opts.Tolerance)
	}
	b := &Builder{opts: *opts, excluded: make(map[string]bool)}
	for _, alg := range opts.Exclude {
		b.excluded[alg] = true
	}
	return b, nil
}

// ModelFor returns the model kind used for algorithm.
func (b *Builder) ModelFor(algorithm string) benchmath.Kind {
	if k, ok := b.opts.Models[algorithm]; ok {
		return k
	}
	return b.opts.DefaultModel
}

func (b *Builder) warn(format string, args ...interface{}) {
	if b.opts.Warn != nil {
		b.opts.Warn(format, args...)
	}
}

func (b *Builder) skip(label, path string, err error) {
	b.skipped = append(b.skipped, Skipped{Label: label, Path: path, Err: err})
	b.warn("skipping %s: %v\n", label, err)
}

// Add classifies, fits and groups the series label with the given
// samples. If the series cannot be fit, it is recorded as skipped and
// the error is returned.
func (b *Builder) Add(label string, samples []benchfmt.Sample) (*Series, error) {
	return b.add(label, "", samples)
}

func (b *Builder) add(label, path string, samples []benchfmt.Sample) (*Series, error) {
	alg := benchproc.Algorithm(label)
	s, err := NewSeries(label, alg, samples)
	if err == nil {
		err = s.Fit(b.ModelFor(alg), benchmath.FitOptions{Weighted: b.opts.Weighted})
	}
	if err != nil {
		b.skip(label, path, err)
		return nil, err
	}
	for _, w := range s.model.Warnings {
		b.warn("%s: %v\n", label, w)
	}

	b.series = append(b.series, s)
	if !b.excluded[alg] {
		b.groups.Add(s)
	}
	b.aggDone = false
	return s, nil
}

// AddFile reads the measurement file at path and adds it as a series
// labeled by the file's stem. If the file cannot be read or fit, it
// is recorded as skipped and the error is returned.
func (b *Builder) AddFile(path string) (*Series, error) {
	label, samples, err := benchfmt.ReadFile(path)
	if err != nil {
		b.skip(benchfmt.Label(path), path, err)
		return nil, err
	}
	return b.add(label, path, samples)
}

// AddFiles adds each file in paths. Files that fail are skipped and
// reported through Warn; AddFiles returns the number of series added.
func (b *Builder) AddFiles(paths []string) int {
	n := 0
	for _, path := range paths {
		if _, err := b.AddFile(path); err == nil {
			n++
		}
	}
	return n
}

// Series returns every successfully fit series in the order added,
// including series of excluded algorithms.
func (b *Builder) Series() []*Series {
	return b.series
}

// Groups returns the non-empty groups in the order their algorithms
// were first seen.
func (b *Builder) Groups() []*Group {
	return b.groups.All()
}

// Averages aggregates every group and returns the averaged series, in
// group order. Groups that cannot be aggregated are reported through
// Warn and omitted.
//
// Aggregation needs every series of a group, so it should run after
// all inputs are added; adding more inputs invalidates the result.
func (b *Builder) Averages() []*Series {
	if b.aggDone {
		return b.averages
	}
	b.averages, b.aggSkips = nil, nil
	for _, g := range b.groups.All() {
		avg, err := Aggregate(g, AggregateOptions{
			Model:     b.ModelFor(g.Algorithm),
			Fit:       benchmath.FitOptions{Weighted: b.opts.Weighted},
			Tolerance: b.opts.Tolerance,
		})
		if err != nil {
			label := g.Algorithm + AverageSuffix
			b.aggSkips = append(b.aggSkips, Skipped{Label: label, Err: err})
			b.warn("skipping %s: %v\n", label, err)
			continue
		}
		b.averages = append(b.averages, avg)
	}
	b.aggDone = true
	return b.averages
}

// Skipped returns the inputs and groups that were left out.
func (b *Builder) Skipped() []Skipped {
	out := append([]Skipped(nil), b.skipped...)
	if b.aggDone {
		out = append(out, b.aggSkips...)
	}
	return out
}

// A Result is everything a Builder produced, for consumption by
// reporting code.
type Result struct {
	Series   []*Series
	Groups   []*Group
	Averages []*Series
	Skipped  []Skipped
}

// Result aggregates the groups if needed and returns the results.
func (b *Builder) Result() *Result {
	avgs := b.Averages()
	return &Result{
		Series:   b.Series(),
		Groups:   b.Groups(),
		Averages: avgs,
		Skipped:  b.Skipped(),
	}
}

// Average returns the averaged series of algorithm, or nil.
func (r *Result) Average(algorithm string) *Series {
	for _, a := range r.Averages {
		if a.Algorithm == algorithm {
			return a
		}
	}
	return nil
}
