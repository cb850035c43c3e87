// Package kmeans implements the phases of one Lloyd's iteration over flat
// point-major buffers: nearest-centroid assignment, centroid
// recomputation, per-cluster cost and the convergence predicate.
//
// The phases are plain functions; the caller owns the iteration loop and
// decides which phases run concurrently.
package kmeans
