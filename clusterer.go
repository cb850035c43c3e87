package parkmeans

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/parkmeans/internal/kmeans"
	"github.com/hupe1980/parkmeans/internal/matrix"
	"github.com/hupe1980/parkmeans/internal/parallel"
	"github.com/hupe1980/parkmeans/internal/partition"
)

// Clusterer runs Lloyd's k-means with a fixed configuration.
// It holds no per-run state and is safe for concurrent use.
type Clusterer struct {
	opts options
}

// New creates a Clusterer. It returns an error wrapping ErrInvalidConfig
// if an option is out of range.
func New(optFns ...Option) (*Clusterer, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Clusterer{opts: o}, nil
}

// Workers returns the configured number of assignment workers.
func (c *Clusterer) Workers() int {
	return c.opts.workers
}

// Cluster is a convenience wrapper around New(optFns...).Cluster.
func Cluster(ctx context.Context, data, centroids []float64, assignments []int, m, n, k int, epsilon float64, optFns ...Option) (*Result, error) {
	c, err := New(optFns...)
	if err != nil {
		return nil, err
	}
	return c.Cluster(ctx, data, centroids, assignments, m, n, k, epsilon)
}

// Cluster partitions m points of dimension n into k clusters.
//
// data holds the points and centroids the initial centroids, both flat
// and point-major (point i occupies [i*n, (i+1)*n)). data is only read.
// centroids is updated in place and holds the final centroids on return;
// assignments (length m) is overwritten with the index of each point's
// cluster.
//
// Each iteration assigns every point to its nearest centroid in parallel,
// recomputes every centroid as the mean of its points (a cluster without
// points moves to the origin) and computes the per-cluster cost. The run
// stops once no cluster's cost moved by more than epsilon, or when the
// WithMaxIterations bound is reached. Without a bound a run that never
// stabilizes does not return unless ctx is canceled.
//
// Invalid shapes or scalars are reported before any buffer is touched,
// with an error matching ErrInvalidConfig. Cancellation returns ctx.Err();
// buffers then hold the state of the last completed phase.
func (c *Clusterer) Cluster(ctx context.Context, data, centroids []float64, assignments []int, m, n, k int, epsilon float64) (*Result, error) {
	log := c.opts.logger.WithCount(m).WithDimension(n).WithK(k).WithWorkers(c.opts.workers)
	start := time.Now()

	res, err := c.run(ctx, log, data, centroids, assignments, m, n, k, epsilon)

	var (
		iterations  int
		termination Termination
	)
	if res != nil {
		iterations = res.Iterations
		termination = res.Termination
	}
	duration := time.Since(start)
	c.opts.metricsCollector.RecordRun(iterations, termination, duration, err)
	log.LogRun(ctx, iterations, termination, duration, err)

	return res, err
}

func (c *Clusterer) run(ctx context.Context, log *Logger, data, centroids []float64, assignments []int, m, n, k int, epsilon float64) (*Result, error) {
	if err := validateInputs(data, centroids, assignments, m, n, k, epsilon); err != nil {
		return nil, err
	}

	points, err := matrix.New(m, n, data)
	if err != nil {
		return nil, translateError(err)
	}
	cents, err := matrix.New(k, n, centroids)
	if err != nil {
		return nil, translateError(err)
	}

	scratch := int64(k) * 3 * 8 // previous and current costs, counts
	release, err := c.opts.controller.ReserveMemory(ctx, scratch)
	if err != nil {
		return nil, translateError(err)
	}
	defer release()

	var (
		prev    = make([]float64, k)
		curr    = make([]float64, k)
		counts  = make([]int, k)
		workers = c.opts.workers
		ranges  = partition.Split(m, workers)
	)

	res := &Result{
		Termination: TerminationConverged,
		Costs:       curr,
		Counts:      counts,
		centroids:   cents,
		assignments: assignments,
	}

	assign := func(r partition.Range) error {
		kmeans.AssignRange(points, cents, assignments, r)
		return nil
	}

	for converged := false; !converged; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if limit := c.opts.maxIterations; limit > 0 && res.Iterations >= limit {
			res.Termination = TerminationExhausted
			break
		}

		copy(prev, curr)

		t0 := time.Now()
		if err := parallel.ForEach(ctx, ranges, workers, c.opts.controller, assign); err != nil {
			return nil, err
		}
		t1 := time.Now()
		kmeans.UpdateCentroids(points, cents, assignments, counts)
		t2 := time.Now()
		kmeans.ComputeCost(points, cents, assignments, curr)
		t3 := time.Now()

		res.Iterations++
		converged = kmeans.Converged(prev, curr, epsilon)

		stats := IterationStats{
			Iteration:      res.Iterations,
			TotalCost:      res.TotalCost(),
			MaxDelta:       maxDelta(prev, curr),
			AssignDuration: t1.Sub(t0),
			UpdateDuration: t2.Sub(t1),
			CostDuration:   t3.Sub(t2),
		}
		empty := res.EmptyClusters()
		stats.EmptyClusters = len(empty)
		res.History = append(res.History, stats.TotalCost)

		c.opts.metricsCollector.RecordIteration(stats)
		log.LogIteration(ctx, stats)
		log.LogEmptyClusters(ctx, res.Iterations, empty)
	}

	return res, nil
}

func validateInputs(data, centroids []float64, assignments []int, m, n, k int, epsilon float64) error {
	switch {
	case m <= 0:
		return &ErrInvalidArgument{Name: "point count", Value: m, Reason: "must be positive"}
	case n <= 0:
		return &ErrInvalidArgument{Name: "dimension", Value: n, Reason: "must be positive"}
	case k <= 0:
		return &ErrInvalidArgument{Name: "cluster count", Value: k, Reason: "must be positive"}
	case k > m:
		return &ErrInvalidArgument{Name: "cluster count", Value: k, Reason: fmt.Sprintf("exceeds point count %d", m)}
	case math.IsNaN(epsilon) || epsilon < 0:
		return &ErrInvalidArgument{Name: "epsilon", Value: epsilon, Reason: "must be a non-negative number"}
	}

	if len(data) != m*n {
		return &ErrBufferLength{Buffer: "data", Expected: m * n, Actual: len(data)}
	}
	if len(centroids) != k*n {
		return &ErrBufferLength{Buffer: "centroids", Expected: k * n, Actual: len(centroids)}
	}
	if len(assignments) != m {
		return &ErrBufferLength{Buffer: "assignments", Expected: m, Actual: len(assignments)}
	}
	return nil
}

func maxDelta(prev, curr []float64) float64 {
	var d float64
	for k := range curr {
		d = max(d, math.Abs(prev[k]-curr[k]))
	}
	return d
}
