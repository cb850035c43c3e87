// Package distance provides the vector distance functions used by the
// clustering core.
//
// Both functions operate on float64 coordinate slices of equal length.
// Euclidean is the metric of the assignment and cost phases; SquaredEuclidean
// serves sum-of-squares quality measures.
//
//	d := distance.Euclidean(a, b)
package distance
