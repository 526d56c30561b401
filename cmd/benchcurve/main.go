// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchcurve fits performance models to benchmark measurements and
// charts them.
//
// Usage:
//
//	benchcurve [flags] [file.csv ...]
//
// Each input file holds the measurements of one run of an algorithm
// across input sizes, with columns n, t_mean and t_stdev and optional
// mem and t_Q0 through t_Q4. The file name, without its extension,
// labels the run; runs named <algorithm>_<i1>_<i2> are grouped by
// algorithm. With no file arguments, benchcurve reads every *.csv file
// in the data directory.
//
// Benchcurve fits a model to every run, averages the runs of each
// algorithm into one series and fits that too. It prints a table of
// the fits and writes, to the output directory or Cloud Storage
// location:
//
//	<algorithm>_grouped_analysis.<format>          one chart per algorithm
//	combined_fit_curves_group_averages.<format>    the averaged fits together
//	<algorithm>_average.csv                        with --csv
//	summary.json                                   with --json
//	summary.html                                   with --html
//
// Inputs that cannot be read or fit are reported and skipped.
//
// Settings may also be given in a JSONC file, .benchcurve.json in the
// current directory or the file named by --config. Flags override the
// file. Run "benchcurve --help" for the list of flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	flag "github.com/spf13/pflag"

	"github.com/benjag22/algorithm-analysis-homework2/benchplot"
	"github.com/benjag22/algorithm-analysis-homework2/benchreport"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
	"github.com/benjag22/algorithm-analysis-homework2/internal/config"
	"github.com/benjag22/algorithm-analysis-homework2/internal/sink"
	"github.com/benjag22/algorithm-analysis-homework2/storage/db"
	_ "github.com/benjag22/algorithm-analysis-homework2/storage/db/sqlite3"
)

func main() {
	log.SetPrefix("benchcurve: ")
	log.SetFlags(0)

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

var errNoInputs = errors.New("no input files")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("benchcurve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: benchcurve [flags] [file.csv ...]\n")
		fs.PrintDefaults()
	}
	flags := config.NewFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, _, err := flags.Load(wd)
	if err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.DataDir, "*.csv"))
		if err != nil {
			return err
		}
		sort.Strings(paths)
		if len(paths) == 0 {
			return fmt.Errorf("%w in %s", errNoInputs, cfg.DataDir)
		}
	}

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(stderr, format, args...)
	}
	opts, err := cfg.BuilderOptions(warn)
	if err != nil {
		return err
	}
	b, err := benchseries.NewBuilder(opts)
	if err != nil {
		return err
	}
	b.AddFiles(paths)
	res := b.Result()

	if err := benchreport.Text(stdout, res); err != nil {
		return err
	}

	out, err := sink.Open(ctx, cfg.Out, cfg.Credentials)
	if err != nil {
		return err
	}
	defer out.Close()

	w := &writer{ctx: ctx, sink: out, warn: warn}
	if !cfg.NoCharts {
		formats, err := cfg.ImageFormats()
		if err != nil {
			return err
		}
		w.charts(res, formats, cfg.DPI)
	}
	if cfg.CSV {
		for _, avg := range res.Averages {
			avg := avg
			w.file(benchreport.CSVName(avg.Algorithm), "text/csv", func(wr io.Writer) error {
				return benchreport.CSV(wr, avg)
			})
		}
	}
	if cfg.JSON {
		w.file("summary.json", "application/json", func(wr io.Writer) error {
			return benchreport.JSON(wr, res)
		})
	}
	if cfg.HTML {
		w.file("summary.html", "text/html; charset=utf-8", func(wr io.Writer) error {
			return benchreport.HTML(wr, "Benchmark fits", res)
		})
	}
	if cfg.DB != "" {
		if err := store(ctx, cfg.DBDriver, cfg.DB, res, stderr); err != nil {
			warn("storing fits: %v\n", err)
			w.failed++
		}
	}

	if w.failed > 0 {
		return fmt.Errorf("%d output(s) failed", w.failed)
	}
	return nil
}

// writer writes output files to a sink, reporting and counting
// failures instead of stopping at the first.
type writer struct {
	ctx    context.Context
	sink   sink.Sink
	warn   func(format string, args ...interface{})
	failed int
}

func (w *writer) file(name, contentType string, fn func(io.Writer) error) {
	meta := map[string]string{"Content-Type": contentType}
	if err := sink.WriteFile(w.ctx, w.sink, name, meta, fn); err != nil {
		w.warn("writing %s: %v\n", name, err)
		w.failed++
	}
}

func (w *writer) figure(base string, fig *benchplot.Figure, formats []benchplot.Format, dpi int) {
	for _, f := range formats {
		w.file(benchplot.FileName(base, f), f.ContentType(), func(wr io.Writer) error {
			return fig.Render(wr, f, dpi)
		})
	}
}

func (w *writer) charts(res *benchseries.Result, formats []benchplot.Format, dpi int) {
	for _, g := range res.Groups {
		fig, err := benchplot.Group(g, res.Average(g.Algorithm))
		if err != nil {
			w.warn("charting %s: %v\n", g.Algorithm, err)
			w.failed++
			continue
		}
		w.figure(benchplot.GroupName(g.Algorithm), fig, formats, dpi)
	}
	if len(res.Averages) == 0 {
		return
	}
	fig, err := benchplot.Combined(res.Averages)
	if err != nil {
		w.warn("charting group averages: %v\n", err)
		w.failed++
		return
	}
	w.figure(benchplot.CombinedName, fig, formats, dpi)
}

// store records every fit of res as a new run in the database.
func store(ctx context.Context, driver, dsn string, res *benchseries.Result, stderr io.Writer) error {
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return err
	}
	defer d.Close()

	r, err := d.NewRun(ctx)
	if err != nil {
		return err
	}
	n := 0
	for _, ss := range [][]*benchseries.Series{res.Series, res.Averages} {
		for _, s := range ss {
			if _, err := r.InsertSeries(ctx, s); err != nil {
				return fmt.Errorf("%s: %w", s.Label, err)
			}
			n++
		}
	}
	fmt.Fprintf(stderr, "stored %d fits as run %d\n", n, r.ID)
	return nil
}
