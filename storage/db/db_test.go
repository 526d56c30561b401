// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/benjag22/algorithm-analysis-homework2/benchfmt"
	"github.com/benjag22/algorithm-analysis-homework2/benchmath"
	"github.com/benjag22/algorithm-analysis-homework2/benchseries"
	. "github.com/benjag22/algorithm-analysis-homework2/storage/db"
	"github.com/benjag22/algorithm-analysis-homework2/storage/db/dbtest"
)

func fitted(t *testing.T, label, alg string, k benchmath.Kind, samples []benchfmt.Sample) *benchseries.Series {
	t.Helper()
	s, err := benchseries.NewSeries(label, alg, samples)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Fit(k, benchmath.FitOptions{}); err != nil {
		t.Fatal(err)
	}
	return s
}

// TestRunIDs verifies that NewRun generates increasing run IDs and
// records the creation time.
func TestRunIDs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	defer SetNow(time.Time{})
	SetNow(time.Unix(86400, 0))

	var last int64
	for i := 0; i < 3; i++ {
		r, err := db.NewRun(ctx)
		if err != nil {
			t.Fatalf("NewRun: %v", err)
		}
		if r.ID <= last {
			t.Errorf("run %d has ID %d, want > %d", i, r.ID, last)
		}
		last = r.ID
		if want := time.Unix(86400, 0).UTC(); !r.Created.Equal(want) {
			t.Errorf("Created = %v, want %v", r.Created, want)
		}
	}
	if n, err := db.CountRuns(); err != nil || n != 3 {
		t.Errorf("CountRuns = %d, %v, want 3", n, err)
	}
}

func TestInsertSeries(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	dpSamples := []benchfmt.Sample{
		{N: 1, TMean: 3, TStdev: 0.1, Mem: 10, HasMem: true},
		{N: 2, TMean: 7, TStdev: 0.2},
		{N: 3, TMean: 13, TStdev: 0.3, Mem: 30, HasMem: true},
	}
	dp := fitted(t, "dp_1_2", "dp", benchmath.Quadratic, dpSamples)
	memo := fitted(t, "memo_1_2", "memo", benchmath.Linear, []benchfmt.Sample{{N: 1, TMean: 1}, {N: 2, TMean: 1}})

	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range []*benchseries.Series{dp, memo} {
		id, err := r.InsertSeries(ctx, s)
		if err != nil {
			t.Fatalf("InsertSeries(%s): %v", s.Label, err)
		}
		if id != int64(i) {
			t.Errorf("InsertSeries(%s) = %d, want %d", s.Label, id, i)
		}
	}

	fits, err := db.Fits(ctx, "dp")
	if err != nil {
		t.Fatal(err)
	}
	if len(fits) != 1 {
		t.Fatalf("Fits(dp) returned %d fits, want 1", len(fits))
	}
	f := fits[0]
	if f.RunID != r.ID || f.FitID != 0 || f.Label != "dp_1_2" || f.Algorithm != "dp" || f.Averaged {
		t.Errorf("fit = %+v", f)
	}
	if f.Model != benchmath.Quadratic || f.Equation != dp.Equation() || f.NMin != 1 || f.NMax != 3 {
		t.Errorf("fit = %+v", f)
	}
	if !cmp.Equal(f.Coefficients, dp.Model().Coefficients) {
		t.Errorf("coefficients %v, want %v", f.Coefficients, dp.Model().Coefficients)
	}
	if f.RSquared != dp.Model().RSquared {
		t.Errorf("R² %v, want %v", f.RSquared, dp.Model().RSquared)
	}

	samples, err := db.Samples(ctx, f.RunID, f.FitID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dpSamples, samples); diff != "" {
		t.Errorf("samples (-want +got):\n%s", diff)
	}

	// Constant times leave R² undefined.
	all, err := db.Fits(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[1].Label != "memo_1_2" || !math.IsNaN(all[1].RSquared) {
		t.Errorf("Fits() = %+v", all)
	}
}

func TestInsertUnfitted(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)
	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	s, err := benchseries.NewSeries("dp_1_2", "dp", []benchfmt.Sample{{N: 1, TMean: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.InsertSeries(ctx, s); err == nil {
		t.Errorf("InsertSeries of unfitted series succeeded")
	}
	if fits, err := db.Fits(ctx, ""); err != nil || len(fits) != 0 {
		t.Errorf("Fits = %v, %v, want none", fits, err)
	}
}

func TestForeignKeys(t *testing.T) {
	db := dbtest.NewDB(t)
	_, err := DBSQL(db).Exec("INSERT INTO Fits(RunID, FitID) VALUES (42, 0)")
	if err == nil {
		t.Errorf("inserted a fit for a missing run")
	}
}
