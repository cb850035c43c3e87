package parkmeans

import (
	"log/slog"

	"github.com/hupe1980/parkmeans/resource"
)

// DefaultWorkers is the number of assignment workers used when WithWorkers is not given.
const DefaultWorkers = 16

type options struct {
	workers          int
	maxIterations    int
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
}

// Option configures a Clusterer.
type Option func(*options)

// WithWorkers configures the number of assignment workers, and therefore
// the number of partitions the point range is split into each iteration.
//
// The result does not depend on the worker count; only the execution
// order of the assignment phase does. Must be positive.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithMaxIterations bounds the number of Lloyd's iterations.
//
// If the bound is reached before the costs stabilize, the run stops with
// TerminationExhausted. 0 (the default) means unbounded: a run only stops
// once it converges. Negative values are rejected.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMetricsCollector configures a metrics collector for iterations and runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &parkmeans.BasicMetricsCollector{}
//	c, _ := parkmeans.New(parkmeans.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Iterations: %d\n", stats.RunCount, stats.IterationCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := parkmeans.NewJSONLogger(slog.LevelDebug)
//	c, _ := parkmeans.New(parkmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController shares worker and memory limits between
// Clusterers. Every assignment worker holds one of the controller's worker
// slots while it runs, and each run reserves its scratch memory from it.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers:          DefaultWorkers,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) validate() error {
	if o.workers <= 0 {
		return &ErrInvalidArgument{Name: "workers", Value: o.workers, Reason: "must be positive"}
	}
	if o.maxIterations < 0 {
		return &ErrInvalidArgument{Name: "max iterations", Value: o.maxIterations, Reason: "must not be negative"}
	}
	return nil
}
