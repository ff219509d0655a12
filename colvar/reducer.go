package colvar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ReducerKind selects how the per-window series is collapsed into one
// scalar.
type ReducerKind int

const (
	// ReduceSum adds up the switched contributions of every window: the
	// "how many windows look like the template" count.
	ReduceSum ReducerKind = iota

	// ReduceMin is a smooth minimum over the raw window distances,
	// beta / ln(sum_i exp(beta/v_i)).
	ReduceMin

	// ReduceMax is a smooth maximum over the raw window distances,
	// beta * ln(sum_i exp(v_i/beta)).
	ReduceMax

	// ReduceMean is the arithmetic mean of the raw window distances.
	ReduceMean
)

// String returns the configuration-file spelling of the reducer.
func (k ReducerKind) String() string {
	switch k {
	case ReduceSum:
		return "sum"
	case ReduceMin:
		return "min"
	case ReduceMax:
		return "max"
	case ReduceMean:
		return "mean"
	}
	return fmt.Sprintf("ReducerKind(%d)", int(k))
}

// ParseReducer converts a configuration-file spelling into a ReducerKind.
func ParseReducer(s string) (ReducerKind, error) {
	switch s {
	case "sum", "lessthan":
		return ReduceSum, nil
	case "min":
		return ReduceMin, nil
	case "max":
		return ReduceMax, nil
	case "mean", "average":
		return ReduceMean, nil
	}
	return 0, fmt.Errorf("colvar: unknown reducer %q (want sum, min, max or mean)", s)
}

// DefaultBeta is the default smoothing parameter of the soft extrema.
const DefaultBeta = 50.0

// Reducer pairs a kind with the smoothing parameter used by the soft
// extrema. Beta is ignored by ReduceSum and ReduceMean.
type Reducer struct {
	Kind ReducerKind
	Beta float64
}

// reduce collapses the series into one value and a weight per entry, so
// that d(value)/d(entry_i) = weights[i]. Value and weights always come from
// the same formula; whatever happens, a reducer never mixes them.
func (r Reducer) reduce(values []float64) (float64, []float64) {
	weights := make([]float64, len(values))
	switch r.Kind {
	case ReduceSum:
		for i := range weights {
			weights[i] = 1
		}
		return floats.Sum(values), weights

	case ReduceMean:
		inv := 1 / float64(len(values))
		for i := range weights {
			weights[i] = inv
		}
		return floats.Sum(values) * inv, weights

	case ReduceMin:
		// An exact zero in the series saturates the soft minimum; handle it
		// as the limit: the zero entry carries all the weight.
		for i, v := range values {
			if v < distFloor {
				weights[i] = 1
				return v, weights
			}
		}
		// beta/v easily overflows exp for close matches, so work with the
		// shifted exponentials: exp(t_i)/sum exp(t_j) is invariant under a
		// common shift of t.
		t := make([]float64, len(values))
		for i, v := range values {
			t[i] = r.Beta / v
		}
		shift := floats.Max(t)
		exps := make([]float64, len(values))
		for i := range t {
			exps[i] = math.Exp(t[i] - shift)
		}
		f := floats.Sum(exps)
		logF := shift + math.Log(f)
		min := r.Beta / logF
		for i, v := range values {
			weights[i] = min * min * exps[i] / (f * v * v)
		}
		return min, weights

	case ReduceMax:
		t := make([]float64, len(values))
		for i, v := range values {
			t[i] = v / r.Beta
		}
		shift := floats.Max(t)
		exps := make([]float64, len(values))
		for i := range t {
			exps[i] = math.Exp(t[i] - shift)
		}
		f := floats.Sum(exps)
		max := r.Beta * (shift + math.Log(f))
		floats.ScaleTo(weights, 1/f, exps)
		return max, weights
	}
	panic(fmt.Sprintf("colvar: unhandled reducer %v", r.Kind))
}

// distFloor mirrors the zero guard of the distance calculators.
const distFloor = 1e-10

func (r Reducer) validate() error {
	switch r.Kind {
	case ReduceSum, ReduceMean:
		return nil
	case ReduceMin, ReduceMax:
		if r.Beta <= 0 {
			return fmt.Errorf("colvar: %v reducer needs a positive beta, got %g",
				r.Kind, r.Beta)
		}
		return nil
	}
	return fmt.Errorf("colvar: unknown reducer kind %d", int(r.Kind))
}
