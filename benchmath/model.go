// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath fits closed-form performance models to benchmark
// measurements.
//
// A model predicts the mean running time of an algorithm as a
// function of its input size n. Models are linear combinations of a
// fixed set of terms (such as n², n and 1) chosen by a Kind, and are
// fit by least squares.
package benchmath

import (
	"fmt"
	"math"
	"strings"
)

// A Kind identifies the functional form of a performance model.
type Kind int

const (
	// Quadratic is t = a·n² + b·n + c.
	Quadratic Kind = iota
	// Linear is t = a·n + b.
	Linear
	// Cubic is t = a·n³ + b·n² + c·n + d.
	Cubic
	// NLogN is t = a·n·log₂(n) + b·n + c.
	NLogN
	// NLog2N is t = a·n·log₂²(n) + b·n + c.
	NLog2N
	// Exponential is t = c·bⁿ, fit as ln t = ln c + n·ln b.
	Exponential

	numKinds
)

var kindNames = [...]string{
	Quadratic:   "quadratic",
	Linear:      "linear",
	Cubic:       "cubic",
	NLogN:       "nlogn",
	NLog2N:      "nlog2n",
	Exponential: "exponential",
}

// Kinds returns every supported model kind.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s, as returned by Kind.String.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, &UnsupportedModelError{Name: s}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= numKinds {
		return nil, &UnsupportedModelError{Name: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// An UnsupportedModelError reports a model kind this package cannot fit.
type UnsupportedModelError struct {
	Name string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model %q (want one of %s)", e.Name, strings.Join(kindNames[:], ", "))
}

// A FittingError reports samples that cannot determine a model.
type FittingError struct {
	Kind Kind
	Msg  string
}

func (e *FittingError) Error() string {
	return fmt.Sprintf("cannot fit %s model: %s", e.Kind, e.Msg)
}

// A Model is a fitted performance model.
type Model struct {
	Kind Kind

	// Coefficients are the fitted parameters in the order of the
	// kind's terms, highest order first. For Exponential they are
	// c and b of c·bⁿ.
	Coefficients []float64

	// RSquared is the coefficient of determination of the fit
	// over the samples it was computed from.
	RSquared float64

	// Warnings is a list of warnings about this fit that should be
	// reported to the user.
	Warnings []error

	terms []term
}

// Eval returns the model's predicted mean time at input size n.
// n need not be one of the sampled sizes.
func (m *Model) Eval(n float64) float64 {
	if m.Kind == Exponential {
		return m.Coefficients[0] * math.Pow(m.Coefficients[1], n)
	}
	var t float64
	for i, term := range m.terms {
		t += m.Coefficients[i] * term.f(n)
	}
	return t
}

// Equation returns a human-readable rendering of the fitted model.
func (m *Model) Equation() string {
	c := m.Coefficients
	switch m.Kind {
	case Quadratic:
		return fmt.Sprintf("%.4fn² + %.2fn + %.2f", c[0], c[1], c[2])
	case Linear:
		return fmt.Sprintf("%.4fn + %.2f", c[0], c[1])
	case Cubic:
		return fmt.Sprintf("%.6fn³ + %.4fn² + %.2fn + %.2f", c[0], c[1], c[2], c[3])
	case NLogN:
		return fmt.Sprintf("%.4fn·log(n) + %.2fn + %.2f", c[0], c[1], c[2])
	case NLog2N:
		return fmt.Sprintf("%.4fn·log²(n) + %.2fn + %.2f", c[0], c[1], c[2])
	case Exponential:
		return fmt.Sprintf("%.4g·%.4fⁿ", c[0], c[1])
	}
	return fmt.Sprintf("%v%v", m.Kind, c)
}

func (m *Model) String() string {
	return m.Equation()
}
