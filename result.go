package parkmeans

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/parkmeans/internal/kmeans"
	"github.com/hupe1980/parkmeans/internal/matrix"
)

// Termination tells why a run stopped.
type Termination int

const (
	// TerminationConverged means every cluster's cost moved by at most epsilon.
	TerminationConverged Termination = iota
	// TerminationExhausted means the iteration bound was reached first.
	TerminationExhausted
)

func (t Termination) String() string {
	switch t {
	case TerminationConverged:
		return "converged"
	case TerminationExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Result describes a finished run. The final centroids and assignments
// live in the buffers passed to Cluster; Result keeps views of them, so
// mutating those buffers afterwards changes what Predict and Members see.
type Result struct {
	// Iterations is the number of completed iterations.
	Iterations int

	// Termination tells why the run stopped.
	Termination Termination

	// Costs holds, per cluster, the sum of distances from its points to its centroid.
	Costs []float64

	// Counts holds, per cluster, the number of points assigned in the last iteration.
	// A zero entry marks a cluster that collapsed to the origin.
	Counts []int

	// History holds the total cost after each iteration.
	History []float64

	centroids   *matrix.Matrix
	assignments []int
}

// Converged reports whether the run stopped because the costs stabilized.
func (r *Result) Converged() bool {
	return r.Termination == TerminationConverged
}

// K returns the number of clusters.
func (r *Result) K() int {
	return r.centroids.Rows()
}

// Dimension returns the dimensionality of points and centroids.
func (r *Result) Dimension() int {
	return r.centroids.Cols()
}

// TotalCost returns the sum of the per-cluster costs.
func (r *Result) TotalCost() float64 {
	return floats.Sum(r.Costs)
}

// EmptyClusters returns the indices of clusters that received no points in
// the last iteration, in increasing order.
func (r *Result) EmptyClusters() []int {
	var empty []int
	for k, n := range r.Counts {
		if n == 0 {
			empty = append(empty, k)
		}
	}
	return empty
}

// Centroid returns a copy of centroid k.
func (r *Result) Centroid(k int) []float64 {
	return append([]float64(nil), r.centroids.Row(k)...)
}

// Centroids returns a copy of the flat K*N centroid buffer.
func (r *Result) Centroids() []float64 {
	return append([]float64(nil), r.centroids.Raw()...)
}

// Assignments returns a copy of the per-point cluster assignment.
func (r *Result) Assignments() []int {
	return append([]int(nil), r.assignments...)
}

// maxBitmapPoints is the number of point indices a roaring bitmap can hold.
const maxBitmapPoints = 1 << 32

func fitsBitmap(points uint64) bool {
	return points <= maxBitmapPoints
}

// Members returns the indices of the points assigned to cluster k.
// Returns nil if k is out of range, or if the run has more than 2^32
// points, whose indices a bitmap cannot represent.
func (r *Result) Members(k int) *roaring.Bitmap {
	if k < 0 || k >= r.K() || !fitsBitmap(uint64(len(r.assignments))) {
		return nil
	}
	bm := roaring.New()
	for i, a := range r.assignments {
		if a == k {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Clusters returns the members of every cluster, indexed by cluster.
// Points whose assignment was overwritten with a value outside [0, K)
// after the run belong to no cluster. Returns nil under the same size
// bound as Members.
func (r *Result) Clusters() []*roaring.Bitmap {
	if !fitsBitmap(uint64(len(r.assignments))) {
		return nil
	}
	out := make([]*roaring.Bitmap, r.K())
	for k := range out {
		out[k] = roaring.New()
	}
	for i, a := range r.assignments {
		if a < 0 || a >= len(out) {
			continue
		}
		out[a].Add(uint32(i))
	}
	for _, bm := range out {
		bm.RunOptimize()
	}
	return out
}

// Predict returns the cluster whose centroid is nearest to point,
// with the same lowest-index tie rule as the assignment phase.
func (r *Result) Predict(point []float64) (int, error) {
	if err := r.checkPoint(point); err != nil {
		return -1, err
	}
	return kmeans.Nearest(point, r.centroids), nil
}

// Nearest returns up to n clusters ordered by centroid distance to point.
func (r *Result) Nearest(point []float64, n int) ([]int, error) {
	if err := r.checkPoint(point); err != nil {
		return nil, err
	}
	return kmeans.FindClosestCentroids(point, r.centroids, n), nil
}

func (r *Result) checkPoint(point []float64) error {
	if len(point) != r.Dimension() {
		return &ErrBufferLength{Buffer: "point", Expected: r.Dimension(), Actual: len(point)}
	}
	return nil
}
