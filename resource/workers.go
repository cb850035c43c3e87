package resource

import "context"

// AcquireWorker takes a worker slot, waiting while all slots are taken.
// Every successful call must be paired with ReleaseWorker.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if c.workers != nil {
		if err := c.workers.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	c.active.Add(1)
	return nil
}

// TryAcquireWorker takes a worker slot if one is free.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}

	if c.workers != nil && !c.workers.TryAcquire(1) {
		return false
	}

	c.active.Add(1)
	return true
}

// ReleaseWorker returns a slot taken by AcquireWorker or TryAcquireWorker.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}

	c.active.Add(-1)
	if c.workers != nil {
		c.workers.Release(1)
	}
}

// ActiveWorkers returns the number of slots currently taken.
func (c *Controller) ActiveWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}
