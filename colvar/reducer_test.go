package colvar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReducer(t *testing.T) {
	for spelling, want := range map[string]ReducerKind{
		"sum":      ReduceSum,
		"lessthan": ReduceSum,
		"min":      ReduceMin,
		"max":      ReduceMax,
		"mean":     ReduceMean,
		"average":  ReduceMean,
	} {
		got, err := ParseReducer(spelling)
		require.NoError(t, err, spelling)
		assert.Equal(t, want, got, spelling)
	}
	_, err := ParseReducer("median")
	assert.Error(t, err)
}

func TestReduceSum(t *testing.T) {
	r := Reducer{Kind: ReduceSum}
	value, weights := r.reduce([]float64{0.5, 1.5, 2})
	assert.InDelta(t, 4, value, 1e-12)
	for _, w := range weights {
		assert.Equal(t, 1.0, w)
	}
}

func TestReduceMean(t *testing.T) {
	r := Reducer{Kind: ReduceMean}
	value, weights := r.reduce([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, value, 1e-12)
	for _, w := range weights {
		assert.InDelta(t, 0.25, w, 1e-12)
	}
}

func TestReduceMinBounds(t *testing.T) {
	r := Reducer{Kind: ReduceMin, Beta: DefaultBeta}
	values := []float64{0.31, 0.12, 0.55, 0.4}
	value, _ := r.reduce(values)
	assert.Less(t, value, 0.12+1e-12,
		"soft minimum must not exceed the true minimum")
	assert.Greater(t, value, 0.0)
	assert.InDelta(t, 0.12, value, 0.01,
		"with well separated entries the soft minimum tracks the true one")
}

func TestReduceMaxBounds(t *testing.T) {
	r := Reducer{Kind: ReduceMax, Beta: 0.02}
	values := []float64{0.31, 0.12, 0.55, 0.4}
	value, weights := r.reduce(values)
	assert.Greater(t, value, 0.55-1e-12,
		"soft maximum must not fall below the true maximum")
	assert.InDelta(t, 0.55, value, 0.01)

	var sum float64
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1, sum, 1e-9, "soft maximum weights sum to one")
}

// A zero distance (an exact template match) saturates the soft minimum.
func TestReduceMinExactZero(t *testing.T) {
	r := Reducer{Kind: ReduceMin, Beta: DefaultBeta}
	value, weights := r.reduce([]float64{0.3, 0, 0.5})
	assert.Equal(t, 0.0, value)
	assert.Equal(t, []float64{0, 1, 0}, weights)
}

// Small distances drive beta/v far beyond the range of exp; the reduction
// must stay finite anyway.
func TestReduceMinNoOverflow(t *testing.T) {
	r := Reducer{Kind: ReduceMin, Beta: DefaultBeta}
	value, weights := r.reduce([]float64{0.001, 0.002, 0.9})
	require.False(t, math.IsNaN(value) || math.IsInf(value, 0),
		"soft minimum overflowed: %v", value)
	assert.InDelta(t, 0.001, value, 1e-4)
	for i, w := range weights {
		require.False(t, math.IsNaN(w) || math.IsInf(w, 0),
			"weight %d overflowed: %v", i, w)
	}
}

// The weights are the derivative of the reduced value: perturbing one entry
// must move the value by weight*delta.
func TestReduceWeightsAreDerivatives(t *testing.T) {
	values := []float64{0.31, 0.12, 0.55, 0.4}
	reducers := []Reducer{
		{Kind: ReduceSum},
		{Kind: ReduceMean},
		{Kind: ReduceMin, Beta: 0.5},
		{Kind: ReduceMax, Beta: 0.1},
	}
	const h = 1e-7
	for _, r := range reducers {
		_, weights := r.reduce(values)
		for i := range values {
			perturbed := append([]float64(nil), values...)
			perturbed[i] += h
			up, _ := r.reduce(perturbed)
			perturbed[i] -= 2 * h
			down, _ := r.reduce(perturbed)
			fd := (up - down) / (2 * h)
			assert.InDelta(t, weights[i], fd, 1e-5+1e-4*math.Abs(weights[i]),
				"%v reducer, entry %d", r.Kind, i)
		}
	}
}

func TestReducerValidate(t *testing.T) {
	assert.NoError(t, Reducer{Kind: ReduceSum}.validate())
	assert.NoError(t, Reducer{Kind: ReduceMean}.validate())
	assert.NoError(t, Reducer{Kind: ReduceMin, Beta: 1}.validate())
	assert.Error(t, Reducer{Kind: ReduceMin}.validate())
	assert.Error(t, Reducer{Kind: ReduceMax, Beta: -2}.validate())
	assert.Error(t, Reducer{Kind: ReducerKind(42)}.validate())
}
