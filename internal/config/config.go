// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the benchcurve configuration from defaults, an
// optional JSONC file and command-line flags, in increasing order of
// precedence.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchplot"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
)

// FileName is the config file read from the working directory when no
// file is named explicitly.
const FileName = ".benchcurve.json"

var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
)

// Config holds all configuration options.
type Config struct {
	DataDir string   `json:"data_dir"`
	Out     string   `json:"out"`
	Formats []string `json:"formats"`
	DPI     int      `json:"dpi"`

	// Models maps algorithms to model kind names.
	Models       map[string]string `json:"models"`
	DefaultModel string            `json:"default_model"`
	Exclude      []string          `json:"exclude"`
	Weighted     bool              `json:"weighted"`
	Tolerance    float64           `json:"tolerance"`

	CSV      bool `json:"csv"`
	JSON     bool `json:"json"`
	HTML     bool `json:"html"`
	NoCharts bool `json:"no_charts"`

	DBDriver string `json:"db_driver"`
	DB       string `json:"db"`

	// Credentials is a service account key file for gs:// outputs.
	Credentials string `json:"credentials,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	opts := benchseries.DefaultBuilderOptions()
	models := make(map[string]string)
	for alg, k := range opts.Models {
		models[alg] = k.String()
	}
	return &Config{
		DataDir:      "data",
		Out:          "plots",
		Formats:      []string{string(benchplot.PNG)},
		DPI:          benchplot.DefaultDPI,
		Models:       models,
		DefaultModel: opts.DefaultModel.String(),
		Exclude:      append([]string(nil), opts.Exclude...),
		Tolerance:    opts.Tolerance,
		DBDriver:     "sqlite3",
	}
}

// Parse decodes a JSONC config document onto c. Fields absent from
// data keep their current values; entries of "models" are added to
// the current models.
func (c *Config) Parse(data []byte) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	var algs []string
	for alg := range c.Models {
		algs = append(algs, alg)
	}
	sort.Strings(algs)
	for _, alg := range algs {
		if _, err := benchmath.ParseKind(c.Models[alg]); err != nil {
			return fmt.Errorf("model for %s: %w", alg, err)
		}
	}
	if _, err := benchmath.ParseKind(c.DefaultModel); err != nil {
		return fmt.Errorf("default model: %w", err)
	}
	if _, err := c.ImageFormats(); err != nil {
		return err
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if !(c.Tolerance > 0 && c.Tolerance <= 1) {
		return fmt.Errorf("tolerance must be in (0, 1], got %v", c.Tolerance)
	}
	if c.Out == "" {
		return errors.New("out must not be empty")
	}
	if c.DB != "" && c.DBDriver != "sqlite3" && c.DBDriver != "mysql" {
		return fmt.Errorf("unsupported db driver %q (want sqlite3 or mysql)", c.DBDriver)
	}
	return nil
}

// ImageFormats returns the chart formats of c, without duplicates.
func (c *Config) ImageFormats() ([]benchplot.Format, error) {
	var fs []benchplot.Format
	seen := make(map[benchplot.Format]bool)
	for _, s := range c.Formats {
		f, err := benchplot.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			fs = append(fs, f)
		}
	}
	return fs, nil
}

// BuilderOptions returns the benchseries options described by c.
// warn receives the Builder's warnings.
func (c *Config) BuilderOptions(warn func(format string, args ...interface{})) (*benchseries.BuilderOptions, error) {
	opts := &benchseries.BuilderOptions{
		Models:    make(map[string]benchmath.Kind),
		Exclude:   c.Exclude,
		Weighted:  c.Weighted,
		Tolerance: c.Tolerance,
		Warn:      warn,
	}
	for alg, name := range c.Models {
		k, err := benchmath.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("model for %s: %w", alg, err)
		}
		opts.Models[alg] = k
	}
	var err error
	if opts.DefaultModel, err = benchmath.ParseKind(c.DefaultModel); err != nil {
		return nil, fmt.Errorf("default model: %w", err)
	}
	return opts, nil
}

// Flags binds the command-line flags that override a Config.
type Flags struct {
	fs     *flag.FlagSet
	config string
	v      Config
	models []string
}

// NewFlags defines the configuration flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()
	fs.StringVar(&f.config, "config", "", "read configuration from `file` (default ./"+FileName+" if present)")
	fs.StringVar(&f.v.DataDir, "data-dir", d.DataDir, "read *.csv measurement files from `dir` when no files are given")
	fs.StringVarP(&f.v.Out, "out", "o", d.Out, "write charts and reports to `dir` or gs://bucket/prefix")
	fs.StringSliceVar(&f.v.Formats, "format", d.Formats, "chart `formats` (png, svg, pdf)")
	fs.IntVar(&f.v.DPI, "dpi", d.DPI, "resolution of PNG charts")
	fs.StringArrayVarP(&f.models, "model", "m", nil, "fit `algorithm=kind` (repeatable)")
	fs.StringVar(&f.v.DefaultModel, "default-model", d.DefaultModel, "model `kind` for algorithms without a --model")
	fs.StringSliceVar(&f.v.Exclude, "exclude", nil, "fit `algorithms` individually but leave them out of groups")
	fs.BoolVar(&f.v.Weighted, "weighted", false, "weight fits by inverse variance")
	fs.Float64Var(&f.v.Tolerance, "tolerance", d.Tolerance, "fraction of a run's n range within which samples are averaged together")
	fs.BoolVar(&f.v.CSV, "csv", false, "write the averaged samples of each group as CSV")
	fs.BoolVar(&f.v.JSON, "json", false, "write a JSON summary")
	fs.BoolVar(&f.v.HTML, "html", false, "write an HTML summary")
	fs.BoolVar(&f.v.NoCharts, "no-charts", false, "do not draw charts")
	fs.StringVar(&f.v.DBDriver, "db-driver", d.DBDriver, "database `driver` for --db (sqlite3 or mysql)")
	fs.StringVar(&f.v.DB, "db", "", "store fits in the database `dsn`")
	fs.StringVar(&f.v.Credentials, "credentials", "", "service account key `file` for gs:// outputs")
	return f
}

// Load returns the configuration: the defaults, overlaid with the
// config file, overlaid with the flags that were set on the command
// line. Relative config file paths are resolved against workDir. It
// also returns the path of the config file read, if any.
func (f *Flags) Load(workDir string) (*Config, string, error) {
	cfg := Default()

	path, mustExist := f.config, true
	if path == "" {
		path, mustExist = FileName, false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.Parse(data); err != nil {
			return nil, "", fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !mustExist:
		path = ""
	case errors.Is(err, os.ErrNotExist):
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, f.config)
	default:
		return nil, "", err
	}

	if err := f.apply(cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, "", fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, path, nil
}

// apply copies the flags set on the command line onto cfg.
func (f *Flags) apply(cfg *Config) error {
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}
	set("data-dir", func() { cfg.DataDir = f.v.DataDir })
	set("out", func() { cfg.Out = f.v.Out })
	set("format", func() { cfg.Formats = f.v.Formats })
	set("dpi", func() { cfg.DPI = f.v.DPI })
	set("default-model", func() { cfg.DefaultModel = f.v.DefaultModel })
	set("exclude", func() { cfg.Exclude = f.v.Exclude })
	set("weighted", func() { cfg.Weighted = f.v.Weighted })
	set("tolerance", func() { cfg.Tolerance = f.v.Tolerance })
	set("csv", func() { cfg.CSV = f.v.CSV })
	set("json", func() { cfg.JSON = f.v.JSON })
	set("html", func() { cfg.HTML = f.v.HTML })
	set("no-charts", func() { cfg.NoCharts = f.v.NoCharts })
	set("db-driver", func() { cfg.DBDriver = f.v.DBDriver })
	set("db", func() { cfg.DB = f.v.DB })
	set("credentials", func() { cfg.Credentials = f.v.Credentials })

	for _, m := range f.models {
		alg, kind, ok := strings.Cut(m, "=")
		if !ok || alg == "" {
			return fmt.Errorf("--model %q: want algorithm=kind", m)
		}
		if cfg.Models == nil {
			cfg.Models = make(map[string]string)
		}
		cfg.Models[alg] = kind
	}
	return nil
}
