// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import "testing"

func TestAlgorithm(t *testing.T) {
	check := func(label, want string) {
		t.Helper()
		got := Algorithm(label)
		if got != want {
			t.Errorf("Algorithm(%q) = %q, want %q", label, got, want)
		}
	}

	// <algorithm>_<run>_<extract>
	check("memo_12_15", "memo")
	check("dp_1_2", "dp")
	check("recursive_0_9_extra", "recursive")

	// <algorithm-with-underscores>_<start>_<end>
	check("dp_optimized_3_7", "dp_optimized")
	check("edit_distance_dp_1_2", "edit_distance_dp")
	check("a_b_c", "a")

	// Fewer than three tokens.
	check("memo", "memo")
	check("memo_3", "memo")
	check("_3", "")
	check("", "")

	// Degenerate labels still classify.
	check("___", "_")
	check("a__", "a")
	check("x_٣_y", "x") // Arabic-Indic digit
}

func TestAlgorithmNumericSecondToken(t *testing.T) {
	check := func(label, first string) {
		t.Helper()
		if got := Algorithm(label); got != first {
			t.Errorf("Algorithm(%q) = %q, want first token %q", label, got, first)
		}
	}
	check("a_1_b", "a")
	check("alg_42_x_y_z", "alg")
	check("q_007_0", "q")
	check("z_9_", "z")
}

func TestExtract(t *testing.T) {
	check := func(label, wantStart, wantEnd string, wantOK bool) {
		t.Helper()
		start, end, ok := Extract(label)
		if start != wantStart || end != wantEnd || ok != wantOK {
			t.Errorf("Extract(%q) = %q, %q, %v, want %q, %q, %v", label, start, end, ok, wantStart, wantEnd, wantOK)
		}
	}
	check("dp_optimized_3_7", "3", "7", true)
	check("memo_12_15", "12", "15", true)
	check("memo_12", "", "", false)
	check("", "", "", false)
}

func TestDisplayName(t *testing.T) {
	check := func(alg, want string) {
		t.Helper()
		if got := DisplayName(alg); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", alg, got, want)
		}
	}
	check("dp_optimized", "Dp Optimized")
	check("memo", "Memo")
	check("", "")
	check("a__b", "A  B")
	check("edit2distance", "Edit2Distance")
	check("LCS_dp", "Lcs Dp")
	check("x-y", "X-Y")
}
