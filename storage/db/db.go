// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores fitted benchmark series in a SQL database, so
// that runs of the tool can be compared over time.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
)

// DB is a high-level interface to a database of fits. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun    *sql.Stmt
	insertFit    *sql.Stmt
	insertSample *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS Fits (
	RunID BIGINT UNSIGNED,
	FitID BIGINT UNSIGNED,
	Label VARCHAR(255),
	Algorithm VARCHAR(255),
	Averaged BOOLEAN,
	Model VARCHAR(32),
	Equation VARCHAR(255),
	Coefficients VARCHAR(1024),
	RSquared DOUBLE,
	NMin BIGINT,
	NMax BIGINT,
	PRIMARY KEY (RunID, FitID),
{{if not .sqlite3}}
	Index (Algorithm(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Samples (
	RunID BIGINT UNSIGNED,
	FitID BIGINT UNSIGNED,
	N BIGINT,
	TMean DOUBLE,
	TStdev DOUBLE,
	Mem DOUBLE,
	PRIMARY KEY (RunID, FitID, N),
	FOREIGN KEY (RunID, FitID) REFERENCES Fits(RunID, FitID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS FitsAlgorithm ON Fits(Algorithm);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertFit, err = db.sql.Prepare(`INSERT INTO Fits(RunID, FitID, Label, Algorithm, Averaged, Model, Equation, Coefficients, RSquared, NMin, NMax)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	db.insertSample, err = db.sql.Prepare("INSERT INTO Samples(RunID, FitID, N, TMean, TStdev, Mem) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Run is the set of fits produced by one invocation of the tool.
type Run struct {
	// ID is the primary key of the run. IDs increase with each
	// new run.
	ID int64
	// Created is the time the run was started, in UTC.
	Created time.Time

	// fitid is the index of the next fit to insert.
	fitid int64
	// db is the underlying database that this run is going to.
	db *DB
}

// NewRun returns a run for storing new fits.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, created.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Created: created, db: db}, nil
}

// InsertSeries stores the fit and samples of the fitted series s in
// run r, and returns the fit's ID within the run.
func (r *Run) InsertSeries(ctx context.Context, s *benchseries.Series) (fitid int64, err error) {
	m := s.Model()
	if m == nil {
		return 0, fmt.Errorf("series %s is not fitted", s.Label)
	}
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var r2 sql.NullFloat64
	if !math.IsNaN(m.RSquared) && !math.IsInf(m.RSquared, 0) {
		r2 = sql.NullFloat64{Float64: m.RSquared, Valid: true}
	}
	lo, hi := s.NRange()
	fitid = r.fitid
	if _, err = tx.StmtContext(ctx, r.db.insertFit).ExecContext(ctx,
		r.ID, fitid, s.Label, s.Algorithm, s.Averaged, m.Kind.String(), m.Equation(),
		formatFloats(m.Coefficients), r2, lo, hi); err != nil {
		return 0, err
	}
	stmt := tx.StmtContext(ctx, r.db.insertSample)
	for _, smp := range s.Samples {
		var mem sql.NullFloat64
		if smp.HasMem {
			mem = sql.NullFloat64{Float64: smp.Mem, Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, r.ID, fitid, smp.N, smp.TMean, smp.TStdev, mem); err != nil {
			return 0, err
		}
	}
	r.fitid++
	return fitid, nil
}

func formatFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	xs := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

// A Fit is a stored fit.
type Fit struct {
	RunID, FitID int64

	Label, Algorithm string
	Averaged         bool

	Model        benchmath.Kind
	Equation     string
	Coefficients []float64
	// RSquared is NaN if the coefficient of determination was
	// undefined.
	RSquared float64

	NMin, NMax int
}

// Fits returns the stored fits of algorithm, or of every algorithm if
// algorithm is empty, ordered by run and then by insertion.
func (db *DB) Fits(ctx context.Context, algorithm string) ([]*Fit, error) {
	q := "SELECT RunID, FitID, Label, Algorithm, Averaged, Model, Equation, Coefficients, RSquared, NMin, NMax FROM Fits"
	var args []interface{}
	if algorithm != "" {
		q += " WHERE Algorithm = ?"
		args = append(args, algorithm)
	}
	q += " ORDER BY RunID, FitID"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fits []*Fit
	for rows.Next() {
		var f Fit
		var model, coeffs string
		var r2 sql.NullFloat64
		if err := rows.Scan(&f.RunID, &f.FitID, &f.Label, &f.Algorithm, &f.Averaged, &model, &f.Equation, &coeffs, &r2, &f.NMin, &f.NMax); err != nil {
			return nil, err
		}
		if f.Model, err = benchmath.ParseKind(model); err != nil {
			return nil, err
		}
		if f.Coefficients, err = parseFloats(coeffs); err != nil {
			return nil, fmt.Errorf("fit %d/%d: coefficients: %v", f.RunID, f.FitID, err)
		}
		f.RSquared = math.NaN()
		if r2.Valid {
			f.RSquared = r2.Float64
		}
		fits = append(fits, &f)
	}
	return fits, rows.Err()
}

// Samples returns the samples of a stored fit, in increasing order of N.
func (db *DB) Samples(ctx context.Context, runid, fitid int64) ([]benchfmt.Sample, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT N, TMean, TStdev, Mem FROM Samples WHERE RunID = ? AND FitID = ? ORDER BY N", runid, fitid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []benchfmt.Sample
	for rows.Next() {
		var smp benchfmt.Sample
		var mem sql.NullFloat64
		if err := rows.Scan(&smp.N, &smp.TMean, &smp.TStdev, &mem); err != nil {
			return nil, err
		}
		smp.Mem, smp.HasMem = mem.Float64, mem.Valid
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// CountRuns returns the number of runs stored.
func (db *DB) CountRuns() (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&count)
	return count, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertFit, db.insertSample} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
