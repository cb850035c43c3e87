package resource

import (
	"context"
	"fmt"
	"sync"
)

func noop() {}

// ReserveMemory reserves bytes of scratch memory, waiting for other runs
// to release theirs if the limit is reached. The returned func gives the
// reservation back and is safe to call more than once.
//
// A request above the hard limit fails with ErrExceedsLimit instead of
// waiting forever.
func (c *Controller) ReserveMemory(ctx context.Context, bytes int64) (release func(), err error) {
	if c == nil || bytes <= 0 {
		return noop, nil
	}

	if c.mem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return noop, fmt.Errorf("%w: %d bytes requested, limit %d", ErrExceedsLimit, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.mem.Acquire(ctx, bytes); err != nil {
			return noop, err
		}
	}

	return c.grantMemory(bytes), nil
}

// TryReserveMemory is ReserveMemory without waiting. ok is false if the
// reservation does not fit right now.
func (c *Controller) TryReserveMemory(bytes int64) (release func(), ok bool) {
	if c == nil || bytes <= 0 {
		return noop, true
	}

	if c.mem != nil && !c.mem.TryAcquire(bytes) {
		return noop, false
	}

	return c.grantMemory(bytes), true
}

func (c *Controller) grantMemory(bytes int64) func() {
	c.memUsed.Add(bytes)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.memUsed.Add(-bytes)
			if c.mem != nil {
				c.mem.Release(bytes)
			}
		})
	}
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}
