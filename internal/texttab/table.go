// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables for terminal reports.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so calls can be chained to build up a
// row at once:
//
//	t.Row().Cell("dp").Cell("quadratic", Right)
type Table struct {
	rows [][]cell
	// rules records rows that are followed by a horizontal rule.
	rules map[int]bool
	// gap separates adjacent columns.
	gap string
}

type cell struct {
	value string
	align align
}

// A CellOption modifies a cell as it is added.
type CellOption func(c *cell)

var (
	Left   CellOption = func(c *cell) { c.align = alignLeft }
	Right  CellOption = func(c *cell) { c.align = alignRight }
	Center CellOption = func(c *cell) { c.align = alignCenter }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad pads s to w runes according to a. Left-aligned cells are not
// padded on the right; Format handles trailing space.
func (a align) pad(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	switch a {
	case alignRight:
		return strings.Repeat(" ", w-n) + s
	case alignCenter:
		return strings.Repeat(" ", (w-n)/2) + s
	}
	return s
}

// SetGap sets the separator between columns. The default is two spaces.
func (t *Table) SetGap(gap string) *Table {
	t.gap = gap
	return t
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row, starting a row if
// there is none.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Cellf is shorthand for Cell(fmt.Sprintf(format, args...)).
func (t *Table) Cellf(format string, args ...interface{}) *Table {
	return t.Cell(fmt.Sprintf(format, args...))
}

// Rule draws a horizontal rule under the current row.
func (t *Table) Rule() *Table {
	if len(t.rows) == 0 {
		return t
	}
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)-1] = true
	return t
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return len(t.rows)
}

// Format lays out table t and writes it to w. Each column is as wide
// as its widest cell. Trailing spaces are not printed.
func (t *Table) Format(w io.Writer) error {
	gap := t.gap
	if gap == "" {
		gap = "  "
	}
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}
	total := 0
	for i, wd := range widths {
		if i > 0 {
			total += utf8.RuneCountInString(gap)
		}
		total += wd
	}

	var line strings.Builder
	for r, row := range t.rows {
		line.Reset()
		for i, c := range row {
			if i > 0 {
				line.WriteString(gap)
			}
			s := c.align.pad(c.value, widths[i])
			line.WriteString(s)
			if i < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(s)))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
		if t.rules[r] {
			if _, err := fmt.Fprintln(w, strings.Repeat("─", total)); err != nil {
				return err
			}
		}
	}
	return nil
}
