// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/stat"
)

// A Point is one observation to fit: the mean time T and its standard
// deviation Stdev at input size N.
type Point struct {
	N, T, Stdev float64
}

// FitOptions configures Fit.
type FitOptions struct {
	// Weighted weights each point by the inverse of its variance
	// (1/Stdev²). If any point has a zero standard deviation, the
	// fit is unweighted and the Model records a warning.
	Weighted bool
}

// term is one basis function of a linear model.
type term struct {
	name string
	f    func(n float64) float64
}

var (
	termOne = term{"1", func(float64) float64 { return 1 }}
	termN   = term{"n", func(n float64) float64 { return n }}
	termN2  = term{"n²", func(n float64) float64 { return n * n }}
	termN3  = term{"n³", func(n float64) float64 { return n * n * n }}

	termNLogN = term{"n·log(n)", func(n float64) float64 {
		if n <= 0 {
			return 0
		}
		return n * math.Log2(n)
	}}
	termNLog2N = term{"n·log²(n)", func(n float64) float64 {
		if n <= 0 {
			return 0
		}
		l := math.Log2(n)
		return n * l * l
	}}
)

// termsFor returns the basis of kind k. For Exponential, the basis is
// that of the log-transformed model ln t = ln c + n·ln b.
func termsFor(k Kind) ([]term, error) {
	switch k {
	case Quadratic:
		return []term{termN2, termN, termOne}, nil
	case Linear:
		return []term{termN, termOne}, nil
	case Cubic:
		return []term{termN3, termN2, termN, termOne}, nil
	case NLogN:
		return []term{termNLogN, termN, termOne}, nil
	case NLog2N:
		return []term{termNLog2N, termN, termOne}, nil
	case Exponential:
		return []term{termOne, termN}, nil
	}
	return nil, &UnsupportedModelError{Name: k.String()}
}

// MinPoints returns the number of distinct input sizes needed to fit
// a model of kind k.
func MinPoints(k Kind) (int, error) {
	terms, err := termsFor(k)
	if err != nil {
		return 0, err
	}
	return len(terms), nil
}

var errZeroStdev = errors.New("weighted fit requested but some samples have zero standard deviation; fit is unweighted")

// Fit fits a model of kind k to pts by least squares.
//
// A model with m terms needs at least m distinct values of N; fewer
// is reported as a *FittingError, as are non-finite inputs and, for
// Exponential, non-positive times. pts is not modified.
func Fit(k Kind, pts []Point, opts FitOptions) (m *Model, err error) {
	terms, err := termsFor(k)
	if err != nil {
		return nil, err
	}

	distinct := make(map[float64]bool)
	for _, p := range pts {
		if math.IsNaN(p.N) || math.IsInf(p.N, 0) || math.IsNaN(p.T) || math.IsInf(p.T, 0) {
			return nil, &FittingError{k, fmt.Sprintf("non-finite sample (n=%v, t=%v)", p.N, p.T)}
		}
		distinct[p.N] = true
	}
	if len(distinct) < len(terms) {
		return nil, &FittingError{k, fmt.Sprintf("need at least %d distinct n, have %d", len(terms), len(distinct))}
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.N
		ys[i] = p.T
		if k == Exponential {
			if p.T <= 0 {
				return nil, &FittingError{k, fmt.Sprintf("non-positive time %v at n=%v", p.T, p.N)}
			}
			ys[i] = math.Log(p.T)
		}
	}

	m = &Model{Kind: k, terms: terms}

	var weights []float64
	if opts.Weighted {
		weights = make([]float64, len(pts))
		for i, p := range pts {
			if !(p.Stdev > 0) {
				weights = nil
				m.Warnings = append(m.Warnings, errZeroStdev)
				break
			}
			w := 1 / (p.Stdev * p.Stdev)
			if k == Exponential {
				// Variance of ln t is approximately (σ/t)².
				w *= p.T * p.T
			}
			weights[i] = w
		}
	}

	// Scale each term to unit magnitude over the samples. Without
	// this, the normal equations for n² or n³ terms at realistic
	// input sizes are too ill-conditioned to solve accurately.
	scale := make([]float64, len(terms))
	scaled := make([]func(xs, termOut []float64), len(terms))
	for i, t := range terms {
		for _, x := range xs {
			scale[i] = math.Max(scale[i], math.Abs(t.f(x)))
		}
		if scale[i] == 0 {
			return nil, &FittingError{k, fmt.Sprintf("term %s is zero at every sample", t.name)}
		}
		f, s := t.f, scale[i]
		scaled[i] = func(xs, termOut []float64) {
			for j, x := range xs {
				termOut[j] = f(x) / s
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			m, err = nil, &FittingError{k, fmt.Sprintf("singular system: %v", r)}
		}
	}()
	params := fit.LinearLeastSquares(xs, ys, weights, scaled...)

	coeffs := make([]float64, len(params))
	for i, p := range params {
		coeffs[i] = p / scale[i]
		if math.IsNaN(coeffs[i]) || math.IsInf(coeffs[i], 0) {
			return nil, &FittingError{k, "singular system"}
		}
	}
	if k == Exponential {
		coeffs = []float64{math.Exp(coeffs[0]), math.Exp(coeffs[1])}
	}
	m.Coefficients = coeffs

	est := make([]float64, len(pts))
	obs := make([]float64, len(pts))
	for i, p := range pts {
		est[i] = m.Eval(p.N)
		obs[i] = p.T
	}
	m.RSquared = stat.RSquaredFrom(est, obs, nil)
	return m, nil
}

// Curve evaluates m at num evenly spaced input sizes spanning [lo, hi].
func (m *Model) Curve(lo, hi float64, num int) (xs, ys []float64) {
	xs = vec.Linspace(lo, hi, num)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = m.Eval(x)
	}
	return xs, ys
}

// Residuals returns the observed minus predicted time of each point.
func (m *Model) Residuals(pts []Point) []float64 {
	res := make([]float64, len(pts))
	for i, p := range pts {
		res[i] = p.T - m.Eval(p.N)
	}
	return res
}
