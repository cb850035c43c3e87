package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, math.Sqrt(8)},
		{"Single", []float64{2}, []float64{-3}, 5},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Euclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestEuclidean_Symmetric(t *testing.T) {
	a := []float64{1.5, -2.25, 7}
	b := []float64{-0.5, 3, 2}
	assert.Equal(t, Euclidean(a, b), Euclidean(b, a))
	assert.GreaterOrEqual(t, Euclidean(a, b), 0.0)
}

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredEuclidean(tt.a, tt.b), 1e-12)
		})
	}
}

func TestLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Euclidean([]float64{1}, []float64{1, 2}) })
	assert.Panics(t, func() { SquaredEuclidean([]float64{1}, []float64{1, 2}) })
}

func TestEuclidean_PlainAccumulation(t *testing.T) {
	plain := func(a, b []float64) float64 {
		var sum float64
		for i := range a {
			sum += (a[i] - b[i]) * (a[i] - b[i])
		}
		return math.Sqrt(sum)
	}

	origin := []float64{0, 0, 0}
	a := []float64{7.8, 3.6, 4.6}
	b := []float64{4.6, 7.8, 3.6}

	assert.Equal(t, plain(origin, a), Euclidean(origin, a))
	assert.Equal(t, plain(origin, b), Euclidean(origin, b))
	// Rounding puts b one ulp further than a.
	assert.Less(t, Euclidean(origin, a), Euclidean(origin, b))
}
