// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"testing"
)

// checkCrux checks that v formats as want and that the float just
// below it, which must round down to the next smaller precision or
// prefix, formats as wantBelow.
func checkCrux(t *testing.T, format func(float64) string, v float64, want, wantBelow string) {
	t.Helper()
	if got := format(v); got != want {
		t.Errorf("format(%v) = %s, want %s", v, got, want)
	}
	below := math.Nextafter(v, 0)
	if got := format(below); got != wantBelow {
		t.Errorf("format(%v-ε) = %s, want %s", v, got, wantBelow)
	}
}

func TestScaleDecimal(t *testing.T) {
	dec := func(v float64) string { return Scale(v, Decimal) }
	checkCrux(t, dec, 0, "0.000", "0.000")
	checkCrux(t, dec, 99.995, "100.0", "99.99")
	checkCrux(t, dec, .99995, "1.000", "999.9m")
	checkCrux(t, dec, .00099995, "1.000m", "999.9µ")
	checkCrux(t, dec, .00000099995, "1.000µ", "999.9n")
	checkCrux(t, dec, .0000000099995, "10.00n", "9.999n")
	// Below a nanosecond there is no smaller prefix.
	checkCrux(t, dec, .00000000099995, "1.000n", "0.9999n")
}

func TestScaleBinary(t *testing.T) {
	bin := func(v float64) string { return Scale(v, Binary) }
	checkCrux(t, bin, .99995*(1<<30), "1.000Gi", "1023.9Mi")
	checkCrux(t, bin, 9.9995*(1<<20), "10.00Mi", "9.999Mi")
	checkCrux(t, bin, .99995*(1<<20), "1.000Mi", "1023.9Ki")
	checkCrux(t, bin, 99.995*(1<<10), "100.0Ki", "99.99Ki")
	checkCrux(t, bin, .99995*(1<<10), "1.000Ki", "1023.9")
	checkCrux(t, bin, 9.9995, "10.00", "9.999")
}

func TestTimingCrux(t *testing.T) {
	// Timings are recorded in nanoseconds and shown in seconds.
	checkCrux(t, Nanoseconds.Format, 999950, "1.000ms", "999.9µs")
	checkCrux(t, Nanoseconds.Format, 9.9995e8, "1.000s", "999.9ms")
}

func TestMemoryCrux(t *testing.T) {
	checkCrux(t, Bytes.Format, .99995*(1<<20), "1.000MiB", "1023.9KiB")
	checkCrux(t, Bytes.Format, 9.9995*(1<<10), "10.00KiB", "9.999KiB")
	checkCrux(t, Bytes.Format, 99.995, "100.0B", "99.99B")
}

func TestCommonScale(t *testing.T) {
	s := CommonScale([]float64{2e-3, 1.5e-6, 0}, Decimal)
	if s.Prefix != "µ" || s.Prec != 3 {
		t.Errorf("CommonScale = %+v, want µ with 3 digits", s)
	}
	if got := s.Format(2e-3); got != "2000.000µ" {
		t.Errorf("Format = %s", got)
	}
	if s := CommonScale(nil, Binary); s.Factor != 1 || s.Prefix != "" {
		t.Errorf("CommonScale(nil) = %+v", s)
	}
}
