// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc derives grouping keys from the labels of
// benchmark measurement series.
//
// Measurement files are conventionally named
//
//	<algorithm>[_<algorithm-continuation>]*_<index1>_<index2>
//
// for example "dp_optimized_3_7" or "memo_12_15". The convention is
// advisory: Algorithm never fails, and labels that don't follow it
// degrade to a coarser (possibly whole-label) classification.
package benchproc

import (
	"strings"
	"unicode"
)

// Delimiter separates the tokens of a series label.
const Delimiter = "_"

// Algorithm returns the algorithm identifier encoded in label.
//
// If label has fewer than three tokens, the algorithm is the first
// token. If the second token is numeric, the label is of the form
// <algorithm>_<run>_<extract> and the algorithm is the first token.
// Otherwise the algorithm is every token but the last two.
func Algorithm(label string) string {
	parts := strings.Split(label, Delimiter)
	if len(parts) < 3 {
		if len(parts) == 0 {
			return label
		}
		return parts[0]
	}
	if isDigits(parts[1]) {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-2], Delimiter)
}

// Extract returns the two trailing index tokens of label, which by
// convention identify the text extracts a run was measured on. ok is
// false if label has fewer than three tokens.
func Extract(label string) (start, end string, ok bool) {
	parts := strings.Split(label, Delimiter)
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[len(parts)-2], parts[len(parts)-1], true
}

// DisplayName turns an algorithm identifier into a title for charts
// and reports: delimiters become spaces, every letter that follows a
// non-letter is title-cased and the other letters are lower-cased.
// For example "dp_optimized" becomes "Dp Optimized" and
// "edit2distance" becomes "Edit2Distance".
func DisplayName(algorithm string) string {
	var b strings.Builder
	afterLetter := false
	for _, r := range strings.ReplaceAll(algorithm, Delimiter, " ") {
		if afterLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		afterLetter = unicode.IsLetter(r)
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
