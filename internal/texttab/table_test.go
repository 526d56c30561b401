// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestPad(t *testing.T) {
	check := func(s string, a align, w int, want string) {
		t.Helper()
		if got := a.pad(s, w); got != want {
			t.Errorf("pad(%q, %d) = %q, want %q", s, w, got, want)
		}
	}

	check("abc", alignLeft, 10, "abc")
	check("abc", alignCenter, 10, "   abc")
	check("abc", alignCenter, 11, "    abc")
	check("abc", alignRight, 10, "       abc")
	check("n²", alignRight, 4, "  n²")
	check("toolong", alignRight, 3, "toolong")
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var got strings.Builder
		if err := tab.Format(&got); err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("want:\n%sgot:\n%s", want, got.String())
		}
		tab = Table{}
	}

	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a  b  c\nd  e  f\n")

	// Padding, with no trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a     b  c\nlong  e  long\n")

	// Alignment.
	tab.Row().Cell("a", Left).Cell("b", Center).Cell("c", Right)
	tab.Row().Cell("xxx").Cell("xxx").Cell("xxx")
	check("a     b     c\nxxx  xxx  xxx\n")

	// Rules span the table.
	tab.SetGap(" ")
	tab.Row().Cell("alg").Cell("R²").Rule()
	tab.Row().Cell("dp").Cellf("%.3f", 0.5)
	check("alg R²\n─────────\ndp  0.500\n")

	// Ragged rows.
	tab.Row().Cell("a")
	tab.Row().Cell("bb").Cell("c")
	check("a\nbb  c\n")

	// Empty table.
	check("")
}

func TestCellStartsRow(t *testing.T) {
	var tab Table
	tab.Cell("x")
	if tab.Len() != 1 {
		t.Errorf("Len = %d, want 1", tab.Len())
	}
}
