// Package parkmeans provides a parallel implementation of Lloyd's k-means
// clustering over flat, point-major float64 buffers.
//
// # Quick Start
//
//	data := []float64{0, 0, 0, 1, 10, 0, 10, 1} // 4 points, 2 dimensions
//	centroids := []float64{0, 0, 10, 0}         // 2 initial centroids
//	assignments := make([]int, 4)
//
//	res, err := parkmeans.Cluster(ctx, data, centroids, assignments, 4, 2, 2, 1e-6)
//
// centroids and assignments hold the output. The Result reports how the run
// ended, the per-cluster costs and populations, and the total cost after
// every iteration.
//
// # Algorithm
//
// Every iteration runs three phases:
//
//  1. Assignment: the points are split into one contiguous range per
//     worker and each worker writes the index of the nearest centroid for
//     the points of its range. Ties go to the lowest centroid index. The
//     phase ends when every worker has finished.
//  2. Update: every centroid becomes the mean of its points. A centroid
//     without points moves to the origin.
//  3. Cost: the cost of a cluster is the sum of the Euclidean distances
//     from its points to its centroid.
//
// A run converges once no cluster's cost changed by more than epsilon.
// Results are identical for every worker count.
//
// # Configuration
//
//	c, err := parkmeans.New(
//	    parkmeans.WithWorkers(8),
//	    parkmeans.WithMaxIterations(100),
//	    parkmeans.WithLogger(parkmeans.NewJSONLogger(slog.LevelInfo)),
//	    parkmeans.WithMetricsCollector(&parkmeans.BasicMetricsCollector{}),
//	)
//
// A resource.Controller shared between Clusterers bounds the number of
// assignment workers and the scratch memory of concurrent runs.
//
// # Persistence
//
// Package snapshot saves and loads a finished model, package promcollector
// exports metrics to Prometheus.
package parkmeans
