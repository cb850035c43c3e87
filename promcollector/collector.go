// Package promcollector exports clustering metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/parkmeans"
)

const namespace = "parkmeans"

// Collector implements parkmeans.MetricsCollector on top of Prometheus
// client_golang metrics.
type Collector struct {
	runs          *prometheus.CounterVec
	runLatency    *prometheus.HistogramVec
	runIterations prometheus.Histogram
	iterations    prometheus.Counter
	phaseLatency  *prometheus.HistogramVec
	emptyClusters prometheus.Counter
	totalCost     prometheus.Gauge
	maxDelta      prometheus.Gauge
}

var _ parkmeans.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by outcome",
		}, []string{"status"}),
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of clustering runs",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		runIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Iterations completed per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Lloyd iterations completed",
		}),
		phaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Latency of the phases of an iteration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		emptyClusters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_clusters_total",
			Help:      "Clusters that received no points, summed over iterations",
		}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_cost",
			Help:      "Total cost after the most recent iteration",
		}),
		maxDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_cost_delta",
			Help:      "Largest per-cluster cost change in the most recent iteration",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.runs, c.runLatency, c.runIterations, c.iterations,
		c.phaseLatency, c.emptyClusters, c.totalCost, c.maxDelta,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordIteration implements parkmeans.MetricsCollector.
func (c *Collector) RecordIteration(stats parkmeans.IterationStats) {
	c.iterations.Inc()
	c.emptyClusters.Add(float64(stats.EmptyClusters))
	c.totalCost.Set(stats.TotalCost)
	c.maxDelta.Set(stats.MaxDelta)
	c.phaseLatency.WithLabelValues("assign").Observe(stats.AssignDuration.Seconds())
	c.phaseLatency.WithLabelValues("update").Observe(stats.UpdateDuration.Seconds())
	c.phaseLatency.WithLabelValues("cost").Observe(stats.CostDuration.Seconds())
}

// RecordRun implements parkmeans.MetricsCollector.
func (c *Collector) RecordRun(iterations int, termination parkmeans.Termination, d time.Duration, err error) {
	status := termination.String()
	if err != nil {
		status = "error"
	}
	c.runs.WithLabelValues(status).Inc()
	c.runLatency.WithLabelValues(status).Observe(d.Seconds())
	c.runIterations.Observe(float64(iterations))
}
