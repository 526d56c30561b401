// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes benchmark measurement files.
//
// A measurement file is a CSV table with one row per input size:
//
//	n,t_mean,t_stdev,t_Q0,t_Q1,t_Q2,t_Q3,t_Q4,mem
//	100,1523.5,12.1,1500,1510,1520,1535,1560,4096
//
// The n, t_mean and t_stdev columns are required. The mem column and
// the t_Q0 through t_Q4 quantile columns are optional; quantiles are
// only recorded if all five are present.
package benchfmt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// A Sample is one row of a measurement file: the timing and memory
// statistics of an algorithm for one input size.
type Sample struct {
	// N is the input size. It is always >= 1.
	N int

	// TMean and TStdev are the mean and standard deviation of the
	// measured running time.
	TMean, TStdev float64

	// Mem is the memory usage at this input size. It is only
	// meaningful if HasMem is set.
	Mem    float64
	HasMem bool

	// Quantiles holds t_Q0 through t_Q4, or nil if the file has
	// no quantile columns.
	Quantiles []float64
}

// Column names.
const (
	ColN      = "n"
	ColTMean  = "t_mean"
	ColTStdev = "t_stdev"
	ColMem    = "mem"
)

var (
	requiredCols = []string{ColN, ColTMean, ColTStdev}
	quantileCols = []string{"t_Q0", "t_Q1", "t_Q2", "t_Q3", "t_Q4"}
)

// A ParseError reports a malformed measurement file.
type ParseError struct {
	FileName string
	// Line is the 1-based line of the offending row, or 0 if the
	// error concerns the file as a whole.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// row is the raw text of one CSV record. Fields are decoded by hand so
// errors can carry the offending line and column.
type row struct {
	N      string `csv:"n"`
	TMean  string `csv:"t_mean"`
	TStdev string `csv:"t_stdev"`
	Mem    string `csv:"mem"`
	Q0     string `csv:"t_Q0"`
	Q1     string `csv:"t_Q1"`
	Q2     string `csv:"t_Q2"`
	Q3     string `csv:"t_Q3"`
	Q4     string `csv:"t_Q4"`
}

// Read parses a measurement file from r. fileName is used in error
// messages; it is purely diagnostic.
//
// The returned samples are sorted by N. Any problem with the file,
// including a missing required column, a malformed value, a duplicate
// N or an empty table, is reported as a *ParseError.
func Read(r io.Reader, fileName string) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return nil, &ParseError{fileName, 0, "empty file"}
	} else if err != nil {
		return nil, &ParseError{fileName, 1, err.Error()}
	}
	have := make(map[string]bool)
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, col := range requiredCols {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{fileName, 1, fmt.Sprintf("missing required column(s) %s", strings.Join(missing, ", "))}
	}
	hasMem := have[ColMem]
	hasQuantiles := true
	for _, col := range quantileCols {
		hasQuantiles = hasQuantiles && have[col]
	}

	var rows []*row
	lr := &lineReader{Reader: csv.NewReader(bytes.NewReader(data))}
	if err := gocsv.UnmarshalCSV(lr, &rows); err != nil {
		return nil, &ParseError{fileName, 0, err.Error()}
	}
	if len(rows) == 0 {
		return nil, &ParseError{fileName, 0, "no samples"}
	}

	samples := make([]Sample, 0, len(rows))
	seen := make(map[int]int)
	for i, rec := range rows {
		// Record 0 is the header.
		p := rowParser{fileName: fileName, line: lr.line(i + 1)}
		s := Sample{
			N:      p.size(ColN, rec.N),
			TMean:  p.nonNegative(ColTMean, rec.TMean),
			TStdev: p.nonNegative(ColTStdev, rec.TStdev),
		}
		if hasMem {
			s.Mem, s.HasMem = p.nonNegative(ColMem, rec.Mem), true
		}
		if hasQuantiles {
			s.Quantiles = []float64{
				p.float(quantileCols[0], rec.Q0),
				p.float(quantileCols[1], rec.Q1),
				p.float(quantileCols[2], rec.Q2),
				p.float(quantileCols[3], rec.Q3),
				p.float(quantileCols[4], rec.Q4),
			}
		}
		if p.err != nil {
			return nil, p.err
		}
		if prev, ok := seen[s.N]; ok {
			return nil, &ParseError{fileName, p.line, fmt.Sprintf("duplicate n=%d (first on line %d)", s.N, prev)}
		}
		seen[s.N] = p.line
		samples = append(samples, s)
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].N < samples[j].N
	})
	return samples, nil
}

// A lineReader records the line each record starts on. Blank lines
// and quoted newlines make that differ from the record index.
type lineReader struct {
	*csv.Reader
	lines []int
}

func (r *lineReader) Read() ([]string, error) {
	rec, err := r.Reader.Read()
	if err == nil {
		line, _ := r.FieldPos(0)
		r.lines = append(r.lines, line)
	}
	return rec, err
}

func (r *lineReader) ReadAll() ([][]string, error) {
	var recs [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

// line returns the line record i started on, or 0 if it is unknown.
func (r *lineReader) line(i int) int {
	if i < len(r.lines) {
		return r.lines[i]
	}
	return 0
}

// ReadFile reads the measurement file at path. The returned label is
// the file name without its directory and extension, which is the
// label the classifier expects.
func ReadFile(path string) (label string, samples []Sample, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	samples, err = Read(f, path)
	if err != nil {
		return "", nil, err
	}
	return Label(path), samples, nil
}

// Label returns the series label for the file at path.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// rowParser decodes the fields of one row, keeping the first error.
type rowParser struct {
	fileName string
	line     int
	err      error
}

func (p *rowParser) fail(col, val, msg string) {
	if p.err == nil {
		p.err = &ParseError{p.fileName, p.line, fmt.Sprintf("column %s: %q %s", col, val, msg)}
	}
}

func (p *rowParser) float(col, val string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		p.fail(col, val, "is not a number")
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.fail(col, val, "is not finite")
		return 0
	}
	return v
}

func (p *rowParser) nonNegative(col, val string) float64 {
	v := p.float(col, val)
	if v < 0 {
		p.fail(col, val, "is negative")
	}
	return v
}

func (p *rowParser) size(col, val string) int {
	s := strings.TrimSpace(val)
	n, err := strconv.Atoi(s)
	if err != nil {
		// Accept integral floats such as "100.0", which some
		// writers produce.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			p.fail(col, val, "is not an integer")
			return 0
		}
		n = int(f)
	}
	if n < 1 {
		p.fail(col, val, "must be at least 1")
	}
	return n
}
