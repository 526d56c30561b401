// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats the measured quantities of a benchmark
// series, execution time and memory, in human-readable units.
package benchunit

import "fmt"

// A Unit is the unit a measurement file records a quantity in.
type Unit int

const (
	Nanoseconds Unit = iota
	Bytes
)

func (u Unit) String() string {
	switch u {
	case Nanoseconds:
		return "ns"
	case Bytes:
		return "bytes"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Class returns the prefix class used to scale values of u.
func (u Unit) Class() Class {
	if u == Bytes {
		return Binary
	}
	return Decimal
}

// base converts v from u to the unit it is displayed in, and returns
// that unit's symbol.
func (u Unit) base(v float64) (float64, string) {
	switch u {
	case Nanoseconds:
		return v * 1e-9, "s"
	case Bytes:
		return v, "B"
	}
	panic(fmt.Sprintf("bad Unit %v", u))
}

// Format formats v, a value in unit u, scaled to a readable prefix.
// For example, Nanoseconds.Format(1234567) is "1.235ms" and
// Bytes.Format(10240) is "10.00KiB".
func (u Unit) Format(v float64) string {
	b, sym := u.base(v)
	return Scale(b, u.Class()) + sym
}

// FormatAll formats vals at a common scale so that they line up in a
// column.
func (u Unit) FormatAll(vals []float64) []string {
	if len(vals) == 0 {
		return nil
	}
	based := make([]float64, len(vals))
	var sym string
	for i, v := range vals {
		based[i], sym = u.base(v)
	}
	s := CommonScale(based, u.Class())
	out := make([]string, len(vals))
	for i, b := range based {
		out[i] = s.Format(b) + sym
	}
	return out
}

// Axis returns an axis label for quantity measured in u, such as
// "Execution time (ns)".
func (u Unit) Axis(quantity string) string {
	return quantity + " (" + u.String() + ")"
}
