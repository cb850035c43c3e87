// Package testutil provides testing utilities for parkmeans.
//
// This package is intended for use in tests, benchmarks and demos only.
// Data generation and centroid seeding are not part of the clustering
// core; the helpers here produce the flat point-major buffers the core
// consumes.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformPoints(m, n)                         // uniform [0, 1)
//	data, labels, centers := rng.GaussianBlobs(m, n, k, 0.5) // k separated blobs
//
// # Seeding
//
//	centroids := rng.SeedCentroids(data, m, n, k) // k distinct points (Forgy)
//
// # Ground Truth
//
//	assignments, iterations := testutil.ReferenceKMeans(data, centroids, m, n, k, eps)
package testutil
