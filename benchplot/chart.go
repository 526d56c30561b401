// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws charts of fitted benchmark series.
package benchplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchproc"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
	"github.com/benjag22/algorithm-analysis-homework2/benchunit"
)

// CurvePoints is the number of points each fitted curve is drawn with.
const CurvePoints = 200

const nAxis = "Number of elements (n)"

var timeAxis = benchunit.Nanoseconds.Axis("Execution time")

// CombinedName is the base name of the figure comparing group averages.
const CombinedName = "combined_fit_curves_group_averages"

// GroupName returns the base name of the figure of algorithm's group.
func GroupName(algorithm string) string {
	return algorithm + "_grouped_analysis"
}

// FileName returns base with the extension of format f.
func FileName(base string, f Format) string {
	return base + "." + string(f)
}

// errPoints plots samples with symmetric standard deviation error bars.
type errPoints []benchmath.Point

func (e errPoints) Len() int                         { return len(e) }
func (e errPoints) XY(i int) (x, y float64)          { return e[i].N, e[i].T }
func (e errPoints) YError(i int) (low, high float64) { return e[i].Stdev, e[i].Stdev }

// runLabel is the legend entry of a member series.
func runLabel(s *benchseries.Series) string {
	if s.Averaged {
		return "Average"
	}
	if start, end, ok := benchproc.Extract(s.Label); ok {
		return fmt.Sprintf("Extracts %s-%s", start, end)
	}
	return s.Label
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	return p
}

// curve returns the fitted curve of s over [lo, hi].
func curve(s *benchseries.Series, lo, hi float64) (*plotter.Line, error) {
	xs, ys := s.Model().Curve(lo, hi, CurvePoints)
	xys := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(xys) == 0 {
		return nil, fmt.Errorf("%s: fitted curve is not finite on [%v, %v]", s.Label, lo, hi)
	}
	return plotter.NewLine(xys)
}

// addData adds the samples of s with error bars to p.
func addData(p *plot.Plot, s *benchseries.Series, i int, legend string) error {
	pts := errPoints(s.Points())
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Label, err)
	}
	sc.GlyphStyle.Color = plotutil.Color(i)
	sc.GlyphStyle.Shape = plotutil.Shape(i)
	sc.GlyphStyle.Radius = vg.Points(2.5)
	eb, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Label, err)
	}
	eb.LineStyle.Color = plotutil.Color(i)
	p.Add(sc, eb)
	p.Legend.Add(legend, sc)
	return nil
}

// addMem adds the memory samples of s to p. It reports false if s
// has none.
func addMem(p *plot.Plot, s *benchseries.Series, i int, legend string) (bool, error) {
	var xys plotter.XYs
	for _, smp := range s.Samples {
		if smp.HasMem {
			xys = append(xys, plotter.XY{X: float64(smp.N), Y: smp.Mem})
		}
	}
	if len(xys) == 0 {
		return false, nil
	}
	l, sc, err := plotter.NewLinePoints(xys)
	if err != nil {
		return false, fmt.Errorf("%s: %w", s.Label, err)
	}
	l.LineStyle.Color = plotutil.Color(i)
	sc.GlyphStyle.Color = plotutil.Color(i)
	sc.GlyphStyle.Shape = plotutil.Shape(i)
	p.Add(l, sc)
	p.Legend.Add(legend, l, sc)
	return true, nil
}

// addCurve adds the fitted curve of s over [lo, hi] to p.
func addCurve(p *plot.Plot, s *benchseries.Series, i int, lo, hi float64, legend string) error {
	l, err := curve(s, lo, hi)
	if err != nil {
		return err
	}
	l.LineStyle.Color = plotutil.Color(i)
	l.LineStyle.Width = vg.Points(1.5)
	if s.Averaged {
		l.LineStyle.Width = vg.Points(3)
		l.LineStyle.Dashes = plotutil.Dashes(1)
	}
	p.Add(l)
	if legend != "" {
		p.Legend.Add(legend, l)
	}
	return nil
}

// Group returns the figure of the members of g and, if avg is not
// nil, their averaged series. It has four panels: the measured times
// with their standard deviations, the fitted curves, the memory usage,
// and the residuals of each fit.
//
// Every member, and avg, must be fitted.
func Group(g *benchseries.Group, avg *benchseries.Series) (*Figure, error) {
	name := benchproc.DisplayName(g.Algorithm)
	lo, hi := g.NRange()
	flo, fhi := float64(lo), float64(hi)

	data := newPlot(name+": measured times", nAxis, timeAxis)
	curves := newPlot(name+": fitted curves", nAxis, timeAxis)
	mem := newPlot(name+": memory usage", nAxis, benchunit.Bytes.Axis("Memory usage"))
	res := newPlot(name+": residuals", nAxis, benchunit.Nanoseconds.Axis("Observed - fitted"))

	series := g.Members
	if avg != nil {
		series = append(append([]*benchseries.Series(nil), g.Members...), avg)
	}
	haveMem := false
	for i, s := range series {
		if s.Model() == nil {
			return nil, fmt.Errorf("%s: series is not fitted", s.Label)
		}
		if !s.Averaged {
			if err := addData(data, s, i, runLabel(s)); err != nil {
				return nil, err
			}
		}
		if err := addCurve(data, s, i, flo, fhi, ""); err != nil {
			return nil, err
		}
		if err := addCurve(curves, s, i, flo, fhi, fmt.Sprintf("%s: %s", runLabel(s), s.Equation())); err != nil {
			return nil, err
		}

		ok, err := addMem(mem, s, i, runLabel(s))
		if err != nil {
			return nil, err
		}
		haveMem = haveMem || ok

		pts := s.Points()
		r := s.Model().Residuals(pts)
		xys := make(plotter.XYs, len(pts))
		for k, pt := range pts {
			xys[k] = plotter.XY{X: pt.N, Y: r[k]}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Label, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		res.Add(sc)
		res.Legend.Add(runLabel(s), sc)
	}
	if !haveMem {
		mem.Title.Text = name + ": no memory data"
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.LineStyle.Dashes = plotutil.Dashes(2)
	res.Add(zero)

	return &Figure{
		Plots:  [][]*plot.Plot{{data, curves}, {mem, res}},
		Width:  32 * vg.Centimeter,
		Height: 24 * vg.Centimeter,
	}, nil
}

// Combined returns a figure comparing the given averaged series. It
// has three panels: the averaged times with their standard
// deviations, the fitted curves, each over its own n range, and the
// memory usage.
func Combined(avgs []*benchseries.Series) (*Figure, error) {
	if len(avgs) == 0 {
		return nil, fmt.Errorf("no averaged series")
	}
	const title = "Group averages"
	data := newPlot(title+": measured times", nAxis, timeAxis)
	curves := newPlot(title+": fitted curves", nAxis, timeAxis)
	mem := newPlot(title+": memory usage", nAxis, benchunit.Bytes.Axis("Memory usage"))

	haveMem := false
	for i, a := range avgs {
		if a.Model() == nil {
			return nil, fmt.Errorf("%s: series is not fitted", a.Label)
		}
		name := benchproc.DisplayName(a.Algorithm)
		if err := addData(data, a, i, name); err != nil {
			return nil, err
		}
		lo, hi := a.NRange()
		if err := addCurve(curves, a, i, float64(lo), float64(hi), fmt.Sprintf("%s: %s", name, a.Equation())); err != nil {
			return nil, err
		}
		ok, err := addMem(mem, a, i, name)
		if err != nil {
			return nil, err
		}
		haveMem = haveMem || ok
	}
	if !haveMem {
		mem.Title.Text = title + ": no memory data"
	}
	return &Figure{
		Plots:  [][]*plot.Plot{{data, curves}, {mem}},
		Width:  32 * vg.Centimeter,
		Height: 24 * vg.Centimeter,
	}, nil
}
