package promcollector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parkmeans"
)

func TestCollectorRecordsRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	data := []float64{0, 0, 1, 0, 10, 0, 11, 0}
	centroids := []float64{0, 0, 10, 0}
	assignments := make([]int, 4)

	res, err := parkmeans.Cluster(context.Background(), data, centroids, assignments, 4, 2, 2, 0, parkmeans.WithMetricsCollector(c))
	require.NoError(t, err)

	assert.Equal(t, float64(res.Iterations), promtest.ToFloat64(c.iterations))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.runs.WithLabelValues("converged")))
	assert.Equal(t, 0.0, promtest.ToFloat64(c.emptyClusters))
	assert.InDelta(t, res.TotalCost(), promtest.ToFloat64(c.totalCost), 1e-12)
	assert.Equal(t, 3, promtest.CollectAndCount(c.phaseLatency))
}

func TestCollectorRecordsErrorsAndEmptyClusters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.RecordIteration(parkmeans.IterationStats{Iteration: 1, EmptyClusters: 2, TotalCost: 5, MaxDelta: 1e30})
	c.RecordRun(1, parkmeans.TerminationExhausted, time.Millisecond, nil)
	c.RecordRun(0, parkmeans.TerminationConverged, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, promtest.ToFloat64(c.emptyClusters))
	assert.Equal(t, 5.0, promtest.ToFloat64(c.totalCost))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.runs.WithLabelValues("exhausted")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.runs.WithLabelValues("error")))
	assert.Equal(t, 0.0, promtest.ToFloat64(c.runs.WithLabelValues("converged")))
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
