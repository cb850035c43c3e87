package kmeans

import (
	"sort"

	"github.com/hupe1980/parkmeans/distance"
	"github.com/hupe1980/parkmeans/internal/matrix"
)

type centroidDist struct {
	id   int
	dist float64
}

// FindClosestCentroids returns the indices of the n closest centroids to
// point, nearest first. Equal distances keep increasing index order.
func FindClosestCentroids(point []float64, centroids *matrix.Matrix, n int) []int {
	k := centroids.Rows()
	if n > k {
		n = k
	}
	if n <= 0 {
		return nil
	}

	dists := make([]centroidDist, k)
	for i := 0; i < k; i++ {
		dists[i] = centroidDist{id: i, dist: distance.Euclidean(point, centroids.Row(i))}
	}

	sort.SliceStable(dists, func(i, j int) bool {
		return dists[i].dist < dists[j].dist
	})

	result := make([]int, n)
	for i := 0; i < n; i++ {
		result[i] = dists[i].id
	}

	return result
}
