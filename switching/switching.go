// Package switching implements the rational switching function used to turn
// a raw structural distance into a bounded order-parameter contribution.
//
// With x = (r - d0) / r0,
//
//	s(x) = (1 - x^n) / (1 - x^m)
//
// which is 1 at r = d0, decays smoothly to 0 as r grows (for m > n > 0),
// and stays in [0,1] for x >= 0. The point x = 1 is a removable
// singularity: numerator and denominator both vanish and the limit is n/m.
package switching

import (
	"fmt"
	"math"
)

// Defaults from the secondary-structure literature (Pietrucci & Laio,
// JCTC 5:2197, 2009). R0 is in the same length unit as the distances fed to
// Eval.
const (
	DefaultD0 = 0.0
	DefaultR0 = 0.08
	DefaultNN = 8
	DefaultMM = 12
)

// Params holds the four parameters of the rational switching function.
type Params struct {
	D0 float64
	R0 float64
	NN int
	MM int
}

// Default returns the standard parameter set.
func Default() Params {
	return Params{D0: DefaultD0, R0: DefaultR0, NN: DefaultNN, MM: DefaultMM}
}

// Func is a validated, ready-to-evaluate switching function.
type Func struct {
	p Params
}

// New validates the parameters and returns the switching function. R0 must
// be positive and the exponents positive with MM > NN, otherwise s would
// not decay to zero.
func New(p Params) (*Func, error) {
	if p.R0 <= 0 {
		return nil, fmt.Errorf("switching: R_0 must be positive, got %g", p.R0)
	}
	if p.NN <= 0 || p.MM <= 0 {
		return nil, fmt.Errorf("switching: exponents must be positive, got "+
			"NN=%d MM=%d", p.NN, p.MM)
	}
	if p.MM <= p.NN {
		return nil, fmt.Errorf("switching: MM must exceed NN for s to decay, "+
			"got NN=%d MM=%d", p.NN, p.MM)
	}
	return &Func{p: p}, nil
}

// Params returns the parameter set the function was built with.
func (f *Func) Params() Params {
	return f.p
}

// onePrec is how close x may come to the removable singularity at x = 1
// before the closed-form limit is used instead of the quotient.
const onePrec = 1e-7

// Eval returns s(r) and ds/dr.
func (f *Func) Eval(r float64) (s, dsdr float64) {
	x := (r - f.p.D0) / f.p.R0
	if x <= 0 {
		// Inside d0 the structure already counts fully.
		return 1, 0
	}

	n, m := float64(f.p.NN), float64(f.p.MM)
	if math.Abs(x-1) < onePrec {
		// L'Hopital at the removable singularity:
		// s -> n/m, ds/dx -> n*(n-m)/(2m).
		return n / m, n * (n - m) / (2 * m) / f.p.R0
	}

	xn := math.Pow(x, n)
	xm := math.Pow(x, m)
	den := 1 - xm
	s = (1 - xn) / den
	// ds/dx = [-n x^(n-1) (1-x^m) + m x^(m-1) (1-x^n)] / (1-x^m)^2
	dsdx := (-n*xn/x*den + m*xm/x*(1-xn)) / (den * den)
	return s, dsdx / f.p.R0
}
