// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"fmt"
	"io"

	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
	"github.com/benjag22/algorithm-analysis-homework2/benchunit"
	"github.com/benjag22/algorithm-analysis-homework2/internal/texttab"
)

// Text writes a fixed-width table of the fits in r to w, one row per
// series followed by one row per group average, and then lists the
// skipped inputs.
func Text(w io.Writer, r *benchseries.Result) error {
	sum := NewSummary(r)

	var tab texttab.Table
	tab.Row().Cell("algorithm").Cell("series").Cell("n", texttab.Right).Cell("model").Cell("equation").Cell("R²", texttab.Right)
	tab.Cell("time@max", texttab.Right).Cell("mem@max", texttab.Right)
	tab.Rule()
	row := func(f Fit, series string) {
		tab.Row().Cell(f.Algorithm).Cell(series).Cellf("%d..%d", f.NMin, f.NMax)
		tab.Cell(f.Model.String()).Cell(f.Equation)
		if f.RSquared == nil {
			tab.Cell("-", texttab.Right)
		} else {
			tab.Cell(fmt.Sprintf("%.4f", *f.RSquared), texttab.Right)
		}
		tab.Cell(benchunit.Nanoseconds.Format(f.TimeAtMax), texttab.Right)
		tab.Cell(formatMem(f.MemAtMax), texttab.Right)
	}
	for _, f := range sum.Series {
		row(f, f.Label)
	}
	if len(sum.Averages) > 0 {
		tab.Rule()
	}
	for _, f := range sum.Averages {
		row(f, fmt.Sprintf("%s (%d runs)", f.Label, f.Members))
	}
	if err := tab.Format(w); err != nil {
		return err
	}

	for i, sk := range sum.Skipped {
		if i == 0 {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "skipped %s: %s\n", sk.Label, sk.Error); err != nil {
			return err
		}
	}
	return nil
}

func formatMem(p *float64) string {
	if p == nil {
		return "-"
	}
	return benchunit.Bytes.Format(*p)
}
