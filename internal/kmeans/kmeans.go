package kmeans

import (
	"math"

	"github.com/hupe1980/parkmeans/distance"
	"github.com/hupe1980/parkmeans/internal/matrix"
	"github.com/hupe1980/parkmeans/internal/partition"
)

// Sentinel seeds the running minimum of the nearest-centroid scan. It is
// larger than any distance seen in practice, so the first centroid scanned
// replaces it.
const Sentinel = 1e30

// Nearest returns the index of the centroid closest to point.
// Ties resolve to the lowest centroid index.
func Nearest(point []float64, centroids *matrix.Matrix) int {
	best := 0
	minDist := Sentinel

	for j := 0; j < centroids.Rows(); j++ {
		d := distance.Euclidean(point, centroids.Row(j))
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}

// AssignRange writes the nearest centroid of every point in r into
// assignments. It only writes assignments[r.Start:r.End], so disjoint
// ranges may run concurrently while points and centroids are not mutated.
func AssignRange(points, centroids *matrix.Matrix, assignments []int, r partition.Range) {
	for i := r.Start; i < r.End; i++ {
		assignments[i] = Nearest(points.Row(i), centroids)
	}
}

// UpdateCentroids overwrites every centroid with the mean of the points
// assigned to it and stores each cluster's population in counts.
//
// A cluster without points divides its zero sum by one and therefore
// moves to the origin.
func UpdateCentroids(points, centroids *matrix.Matrix, assignments []int, counts []int) {
	centroids.Zero()
	for k := range counts {
		counts[k] = 0
	}

	for i, k := range assignments {
		sum := centroids.Row(k)
		for d, v := range points.Row(i) {
			sum[d] += v
		}
		counts[k]++
	}

	for k, n := range counts {
		n = max(n, 1)
		row := centroids.Row(k)
		for d := range row {
			row[d] /= float64(n)
		}
	}
}

// ComputeCost stores in costs the sum of distances between every point and
// its assigned centroid, per cluster.
func ComputeCost(points, centroids *matrix.Matrix, assignments []int, costs []float64) {
	for k := range costs {
		costs[k] = 0
	}

	for i, k := range assignments {
		costs[k] += distance.Euclidean(points.Row(i), centroids.Row(k))
	}
}

// Converged reports whether every cluster's cost moved by at most epsilon.
func Converged(prev, curr []float64, epsilon float64) bool {
	for k := range curr {
		if math.Abs(prev[k]-curr[k]) > epsilon {
			return false
		}
	}
	return true
}
