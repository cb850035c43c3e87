package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parkmeans/internal/matrix"
	"github.com/hupe1980/parkmeans/internal/partition"
)

func mustMatrix(t *testing.T, rows, cols int, data []float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestNearest(t *testing.T) {
	centroids := mustMatrix(t, 3, 2, []float64{
		0, 0, // 0
		10, 10, // 1
		20, 20, // 2
	})

	assert.Equal(t, 0, Nearest([]float64{1, 1}, centroids))
	assert.Equal(t, 1, Nearest([]float64{9, 11}, centroids))
	assert.Equal(t, 2, Nearest([]float64{100, 100}, centroids))
}

func TestNearest_TieBreakLowestIndex(t *testing.T) {
	// (5,0) is exactly 5 away from both (0,0) and (10,0).
	centroids := mustMatrix(t, 2, 2, []float64{0, 0, 10, 0})
	assert.Equal(t, 0, Nearest([]float64{5, 0}, centroids))

	// Duplicate centroids: the first copy wins.
	dup := mustMatrix(t, 3, 1, []float64{7, 3, 3})
	assert.Equal(t, 1, Nearest([]float64{3}, dup))
}

func TestNearest_PermutedCoordinates(t *testing.T) {
	// Same squared terms in a different order: plain left-to-right
	// accumulation leaves the first centroid marginally closer.
	centroids := mustMatrix(t, 2, 3, []float64{
		7.8, 3.6, 4.6,
		4.6, 7.8, 3.6,
	})
	assert.Equal(t, 0, Nearest([]float64{0, 0, 0}, centroids))
}

func TestAssignRange_WritesOnlyItsRange(t *testing.T) {
	points := mustMatrix(t, 4, 2, []float64{0, 0, 0, 1, 10, 0, 10, 1})
	centroids := mustMatrix(t, 2, 2, []float64{0, 0, 10, 0})
	assignments := []int{-7, -7, -7, -7}

	AssignRange(points, centroids, assignments, partition.Range{Start: 1, End: 3})
	assert.Equal(t, []int{-7, 0, 1, -7}, assignments)

	AssignRange(points, centroids, assignments, partition.Range{Start: 0, End: 4})
	assert.Equal(t, []int{0, 0, 1, 1}, assignments)
}

func TestUpdateCentroids(t *testing.T) {
	points := mustMatrix(t, 4, 2, []float64{0, 0, 0, 1, 10, 0, 10, 1})
	centroids := mustMatrix(t, 2, 2, []float64{0, 0, 10, 0})
	counts := make([]int, 2)

	UpdateCentroids(points, centroids, []int{0, 0, 1, 1}, counts)

	assert.Equal(t, []float64{0, 0.5, 10, 0.5}, centroids.Raw())
	assert.Equal(t, []int{2, 2}, counts)
}

func TestUpdateCentroids_EmptyClusterCollapsesToOrigin(t *testing.T) {
	points := mustMatrix(t, 3, 2, []float64{1, 1, 3, 3, 5, 5})
	centroids := mustMatrix(t, 3, 2, []float64{2, 2, 50, 50, 4, 4})
	counts := make([]int, 3)

	UpdateCentroids(points, centroids, []int{0, 0, 2}, counts)

	assert.Equal(t, []float64{2, 2}, centroids.Row(0))
	assert.Equal(t, []float64{0, 0}, centroids.Row(1))
	assert.Equal(t, []float64{5, 5}, centroids.Row(2))
	assert.Equal(t, []int{2, 0, 1}, counts)
}

func TestComputeCost(t *testing.T) {
	points := mustMatrix(t, 4, 2, []float64{0, 0, 0, 1, 10, 0, 10, 1})
	centroids := mustMatrix(t, 2, 2, []float64{0, 0.5, 10, 0.5})
	costs := []float64{99, 99}

	ComputeCost(points, centroids, []int{0, 0, 1, 1}, costs)
	assert.InDeltaSlice(t, []float64{1, 1}, costs, 1e-12)
}

func TestComputeCost_EmptyClusterIsZero(t *testing.T) {
	points := mustMatrix(t, 2, 1, []float64{3, 5})
	centroids := mustMatrix(t, 2, 1, []float64{4, 0})
	costs := make([]float64, 2)

	ComputeCost(points, centroids, []int{0, 0}, costs)
	assert.InDeltaSlice(t, []float64{2, 0}, costs, 1e-12)
}

func TestConverged(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr []float64
		epsilon    float64
		want       bool
	}{
		{"identical", []float64{1, 2}, []float64{1, 2}, 0, true},
		{"within epsilon", []float64{1, 2}, []float64{1.05, 1.95}, 0.1, true},
		{"on the bound", []float64{1}, []float64{1.5}, 0.5, true},
		{"first cluster moves", []float64{1, 2}, []float64{3, 2}, 0.1, false},
		{"only last cluster moves", []float64{1, 2, 3}, []float64{1, 2, 3.2}, 0.1, false},
		{"sentinel start", []float64{Sentinel, Sentinel}, []float64{0, 0}, 1e-6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Converged(tt.prev, tt.curr, tt.epsilon))
		})
	}
}

func TestFindClosestCentroids(t *testing.T) {
	centroids := mustMatrix(t, 3, 2, []float64{
		0, 0, // 0
		10, 10, // 1
		20, 20, // 2
	})

	// Query close to 0,0
	res := FindClosestCentroids([]float64{1, 1}, centroids, 2)
	assert.Equal(t, []int{0, 1}, res)

	// Query close to 20,20
	res = FindClosestCentroids([]float64{19, 19}, centroids, 1)
	assert.Equal(t, []int{2}, res)

	// n larger than k is clamped
	res = FindClosestCentroids([]float64{11, 11}, centroids, 10)
	assert.Equal(t, []int{1, 2, 0}, res)

	assert.Nil(t, FindClosestCentroids([]float64{0, 0}, centroids, 0))
}

func TestFindClosestCentroids_TiesKeepIndexOrder(t *testing.T) {
	centroids := mustMatrix(t, 3, 1, []float64{-1, 1, 5})
	assert.Equal(t, []int{0, 1, 2}, FindClosestCentroids([]float64{0}, centroids, 3))
}
