package distance

import "math"

// Euclidean calculates the Euclidean (L2) distance between two vectors:
// sqrt(sum((a[i] - b[i])^2)), accumulated left to right without scaling.
// Near ties therefore round the same way as the plain formula.
// Panics if the vectors differ in length.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SquaredEuclidean calculates the squared Euclidean distance between two vectors.
// Panics if the vectors differ in length.
func SquaredEuclidean(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("distance: slice lengths do not match")
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
