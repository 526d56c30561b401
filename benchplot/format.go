// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// A Format is an image file format a Figure can be rendered in.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{PNG, SVG, PDF}

// ParseFormat returns the Format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case PNG, SVG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q (want png, svg or pdf)", s)
}

// ContentType returns the MIME type of files in format f.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PDF:
		return "application/pdf"
	}
	return "image/png"
}

// DefaultDPI is the resolution of PNG figures when none is given.
const DefaultDPI = 150

// A Figure is a grid of plots rendered together on one page.
type Figure struct {
	// Plots is indexed by row, then column. Nil entries are left
	// blank.
	Plots [][]*plot.Plot

	Width, Height vg.Length
}

func (fig *Figure) canvas(f Format, dpi int) (vg.CanvasWriterTo, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch f {
	case PNG:
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(fig.Width, fig.Height),
			vgimg.UseDPI(dpi),
			vgimg.UseBackgroundColor(color.White))}, nil
	case SVG:
		return vgsvg.New(fig.Width, fig.Height), nil
	case PDF:
		return vgpdf.New(fig.Width, fig.Height), nil
	}
	return nil, fmt.Errorf("unknown image format %q", string(f))
}

// Render draws fig in format f and writes it to w. dpi applies to PNG
// only; zero means DefaultDPI.
func (fig *Figure) Render(w io.Writer, f Format, dpi int) error {
	c, err := fig.canvas(f, dpi)
	if err != nil {
		return err
	}
	dc := draw.New(c)
	if f != PNG {
		dc.SetColor(color.White)
		dc.Fill(dc.Rectangle.Path())
	}

	rows := len(fig.Plots)
	cols := 0
	for _, row := range fig.Plots {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if rows == 0 || cols == 0 {
		return fmt.Errorf("empty figure")
	}
	grid := make([][]*plot.Plot, rows)
	for j, row := range fig.Plots {
		grid[j] = make([]*plot.Plot, cols)
		copy(grid[j], row)
	}

	pad := vg.Millimeter * 4
	canvases := plot.Align(grid, draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: pad, PadY: pad,
		PadTop: pad, PadBottom: pad, PadLeft: pad, PadRight: pad,
	}, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
	_, err = c.WriteTo(w)
	return err
}
