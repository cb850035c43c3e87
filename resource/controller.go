// Package resource bounds what concurrent clustering runs may use together:
// scratch memory, assignment workers and snapshot IO throughput.
//
// One Controller is meant to be shared. A nil *Controller is valid
// everywhere and imposes no limits.
package resource

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrExceedsLimit is returned for a memory reservation larger than the
// hard limit, which could never be granted.
var ErrExceedsLimit = errors.New("reservation exceeds memory limit")

// Config holds the limits of a Controller. A zero field means unlimited.
type Config struct {
	// MemoryLimitBytes caps the scratch memory reserved by all runs together.
	// Usage is tracked even without a limit.
	MemoryLimitBytes int64

	// MaxWorkers caps the assignment workers running at once across all runs.
	MaxWorkers int64

	// IOLimitBytesPerSec caps snapshot read and write throughput.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config.
type Controller struct {
	cfg Config

	mem     *semaphore.Weighted // nil without a memory limit
	memUsed atomic.Int64

	workers *semaphore.Weighted // nil without a worker limit
	active  atomic.Int64

	io      *rate.Limiter // nil without an IO limit
	ioBytes atomic.Int64
}

// NewController returns a Controller enforcing cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxWorkers > 0 {
		c.workers = semaphore.NewWeighted(cfg.MaxWorkers)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		// One second worth of bytes may pass at once.
		c.io = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the limits c was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}
