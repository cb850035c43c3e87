package parkmeans

import (
	"sync/atomic"
	"time"
)

// IterationStats describes one completed Lloyd's iteration.
type IterationStats struct {
	// Iteration is 1-based.
	Iteration int

	// TotalCost is the sum of the per-cluster costs after the iteration.
	TotalCost float64

	// MaxDelta is the largest per-cluster cost change against the previous iteration.
	MaxDelta float64

	// EmptyClusters is the number of clusters that received no points.
	EmptyClusters int

	AssignDuration time.Duration
	UpdateDuration time.Duration
	CostDuration   time.Duration
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package promcollector).
//
// Implementations must be safe for concurrent use: one collector may be
// shared by concurrent runs.
type MetricsCollector interface {
	// RecordIteration is called after every iteration of a run.
	RecordIteration(stats IterationStats)

	// RecordRun is called once per run, after it ends.
	// err is nil if the run completed (converged or exhausted).
	RecordRun(iterations int, termination Termination, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(IterationStats)                   {}
func (NoopMetricsCollector) RecordRun(int, Termination, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
	RunsConverged    atomic.Int64
	RunsExhausted    atomic.Int64
	RunTotalNanos    atomic.Int64
	IterationCount   atomic.Int64
	EmptyClusters    atomic.Int64
	AssignTotalNanos atomic.Int64
	UpdateTotalNanos atomic.Int64
	CostTotalNanos   atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(stats IterationStats) {
	b.IterationCount.Add(1)
	b.EmptyClusters.Add(int64(stats.EmptyClusters))
	b.AssignTotalNanos.Add(stats.AssignDuration.Nanoseconds())
	b.UpdateTotalNanos.Add(stats.UpdateDuration.Nanoseconds())
	b.CostTotalNanos.Add(stats.CostDuration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, termination Termination, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch termination {
	case TerminationConverged:
		b.RunsConverged.Add(1)
	case TerminationExhausted:
		b.RunsExhausted.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunsConverged:  b.RunsConverged.Load(),
		RunsExhausted:  b.RunsExhausted.Load(),
		RunAvgNanos:    avgNanos(b.RunTotalNanos.Load(), b.RunCount.Load()),
		IterationCount: b.IterationCount.Load(),
		EmptyClusters:  b.EmptyClusters.Load(),
		AssignAvgNanos: avgNanos(b.AssignTotalNanos.Load(), b.IterationCount.Load()),
		UpdateAvgNanos: avgNanos(b.UpdateTotalNanos.Load(), b.IterationCount.Load()),
		CostAvgNanos:   avgNanos(b.CostTotalNanos.Load(), b.IterationCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	RunsConverged  int64
	RunsExhausted  int64
	RunAvgNanos    int64
	IterationCount int64
	EmptyClusters  int64
	AssignAvgNanos int64
	UpdateAvgNanos int64
	CostAvgNanos   int64
}
