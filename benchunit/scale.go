// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Class specifies which family of prefixes scales a value.
type Class int

const (
	// Decimal scales by powers of 1000 with SI prefixes ("k", "M",
	// "m", "µ", "n").
	Decimal Class = iota
	// Binary scales by powers of 1024 with IEC prefixes ("Ki",
	// "Mi"). Binary values are never scaled below 1.
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// A Scaler formats numbers at a fixed scale and precision.
type Scaler struct {
	Prec   int     // digits after the decimal point
	Factor float64 // value of one Prefix, such as 1000 for "k"
	Prefix string
}

// Format formats val at the scale of s and appends its prefix. For
// example, a Decimal Scaler picked for 123456789 formats it as
// "123.5M".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	return string(append(buf, s.Prefix...))
}

type factor struct {
	factor float64
	prefix string
	// Smallest values that print as 100.0, 10.00 and 1.000.
	t100, t10, t1 float64
}

var (
	siFactors          = mkSIFactors()
	iecFactors         = mkIECFactors()
	sigfigs, sigfigsAt = mkSigfigs()
)

// The thresholds are parsed from their printed form so that they
// agree exactly with how Format rounds.

func mkSIFactors() []factor {
	var fs []factor
	exp := 12
	for _, p := range []string{"T", "G", "M", "k", "", "m", "µ", "n"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		fs = append(fs, factor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return fs
}

func mkIECFactors() []factor {
	// Values in [1000, 1024) of a prefix stay at the smaller prefix,
	// so 1020 KiB prints as 1020Ki rather than 0.996Mi.
	var fs []factor
	exp := 40
	for _, p := range []string{"Ti", "Gi", "Mi", "Ki", ""} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("0x1.8ffae147ae148p%d", 6+exp), 64) // 99.995
		t10, _ := strconv.ParseFloat(fmt.Sprintf("0x1.3ffbe76c8b439p%d", 3+exp), 64)  // 9.9995
		t1, _ := strconv.ParseFloat(fmt.Sprintf("0x1.fff972474538fp%d", -1+exp), 64)  // .99995
		fs = append(fs, factor{math.Pow(2, float64(exp)), p, t100, t10, t1})
		exp -= 10
	}
	return fs
}

// mkSigfigs returns the thresholds for values below the smallest
// prefix, and the precision of the first threshold.
func mkSigfigs() ([]float64, int) {
	var ts []float64
	for exp := -1; exp > -9; exp-- {
		t, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		ts = append(ts, t)
	}
	return ts, 3
}

// Scale formats val with at least three significant digits and the
// prefix of cls that fits it.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

// CommonScale returns a Scaler that shows every value in vals with at
// least three significant digits. The scale is chosen by the non-zero
// magnitude closest to zero.
func CommonScale(vals []float64, cls Class) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}
	for _, f := range factors {
		switch {
		case min >= f.t100:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{2, f.factor, f.prefix}
		case min >= f.t1:
			return Scaler{3, f.factor, f.prefix}
		}
	}

	// Below the smallest prefix: add digits instead.
	last := factors[len(factors)-1]
	val := min / last.factor
	for i, t := range sigfigs {
		if val >= t || i == len(sigfigs)-1 {
			return Scaler{i + sigfigsAt, last.factor, last.prefix}
		}
	}
	panic("not reachable")
}
