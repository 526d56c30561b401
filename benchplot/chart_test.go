// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"bytes"
	"testing"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
)

func testGroup(t *testing.T) (*benchseries.Group, *benchseries.Series) {
	t.Helper()
	b, err := benchseries.NewBuilder(nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, label := range []string{"dp_1_2", "dp_3_4"} {
		var ss []benchfmt.Sample
		for _, n := range []int{10, 20, 40, 80} {
			fn := float64(n)
			ss = append(ss, benchfmt.Sample{
				N:      n,
				TMean:  0.5*fn*fn + fn + float64(i),
				TStdev: fn / 10,
				Mem:    fn * 64,
				HasMem: i == 0,
			})
		}
		if _, err := b.Add(label, ss); err != nil {
			t.Fatal(err)
		}
	}
	r := b.Result()
	return r.Groups[0], r.Average("dp")
}

func TestGroupPNG(t *testing.T) {
	g, avg := testGroup(t)
	fig, err := Group(g, avg)
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Plots) != 2 || len(fig.Plots[0]) != 2 || len(fig.Plots[1]) != 2 {
		t.Fatalf("Group figure is not 2x2")
	}
	if got := fig.Plots[0][0].Y.Label.Text; got != "Execution time (ns)" {
		t.Errorf("time axis = %q", got)
	}
	if got := fig.Plots[1][0].Y.Label.Text; got != "Memory usage (bytes)" {
		t.Errorf("memory axis = %q", got)
	}
	var buf bytes.Buffer
	if err := fig.Render(&buf, PNG, 48); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("Render(PNG) did not produce a PNG")
	}
}

func TestCombinedFormats(t *testing.T) {
	_, avg := testGroup(t)
	fig, err := Combined([]*benchseries.Series{avg})
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		f      Format
		prefix string
	}{
		{PNG, "\x89PNG"},
		{SVG, "<?xml"},
		{PDF, "%PDF"},
	} {
		var buf bytes.Buffer
		if err := fig.Render(&buf, tc.f, 48); err != nil {
			t.Errorf("Render(%s): %v", tc.f, err)
			continue
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte(tc.prefix)) {
			t.Errorf("Render(%s) output starts %q, want %q", tc.f, buf.Bytes()[:min(8, buf.Len())], tc.prefix)
		}
	}

	if len(fig.Plots) != 2 || len(fig.Plots[0]) != 2 || len(fig.Plots[1]) != 1 {
		t.Fatalf("Combined figure does not have three panels")
	}
	mem := fig.Plots[1][0]
	if mem.Y.Label.Text != "Memory usage (bytes)" || mem.Title.Text != "Group averages: memory usage" {
		t.Errorf("memory panel = %q, %q", mem.Title.Text, mem.Y.Label.Text)
	}

	if _, err := Combined(nil); err == nil {
		t.Errorf("Combined(nil) succeeded")
	}
	if err := fig.Render(&bytes.Buffer{}, Format("gif"), 0); err == nil {
		t.Errorf("Render(gif) succeeded")
	}
}

func TestCombinedNoMemory(t *testing.T) {
	s, err := benchseries.NewSeries("memo_average", "memo", []benchfmt.Sample{
		{N: 10, TMean: 20, TStdev: 1}, {N: 20, TMean: 40, TStdev: 2}, {N: 30, TMean: 60, TStdev: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Averaged = true
	if err := s.Fit(benchmath.Linear, benchmath.FitOptions{}); err != nil {
		t.Fatal(err)
	}
	fig, err := Combined([]*benchseries.Series{s})
	if err != nil {
		t.Fatal(err)
	}
	if got := fig.Plots[1][0].Title.Text; got != "Group averages: no memory data" {
		t.Errorf("memory panel title = %q", got)
	}
	if err := fig.Render(&bytes.Buffer{}, PNG, 48); err != nil {
		t.Errorf("Render: %v", err)
	}
}

func TestGroupUnfitted(t *testing.T) {
	s, err := benchseries.NewSeries("dp_1_2", "dp", []benchfmt.Sample{{N: 1, TMean: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Group(&benchseries.Group{Algorithm: "dp", Members: []*benchseries.Series{s}}, nil); err == nil {
		t.Errorf("Group with unfitted member succeeded")
	}
}

func TestExponentialCurve(t *testing.T) {
	s, err := benchseries.NewSeries("recursive_1_2", "recursive", []benchfmt.Sample{
		{N: 1, TMean: 2}, {N: 2, TMean: 4}, {N: 3, TMean: 8}, {N: 4, TMean: 16},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Fit(benchmath.Exponential, benchmath.FitOptions{}); err != nil {
		t.Fatal(err)
	}
	l, err := curve(s, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.XYs) != CurvePoints {
		t.Errorf("curve has %d points, want %d", len(l.XYs), CurvePoints)
	}
}

func TestNames(t *testing.T) {
	check := func(got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	check(FileName(GroupName("dp_optimized"), PNG), "dp_optimized_grouped_analysis.png")
	check(FileName(CombinedName, SVG), "combined_fit_curves_group_averages.svg")
	check(PDF.ContentType(), "application/pdf")

	for _, s := range []string{"png", "SVG", " pdf "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("jpeg"); err == nil {
		t.Errorf("ParseFormat(jpeg) succeeded")
	}
}
