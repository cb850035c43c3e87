// Package parallel implements the fork-join "parallel for over partitions"
// used by the assignment phase.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parkmeans/internal/partition"
	"github.com/hupe1980/parkmeans/resource"
)

// ForEach runs fn once per non-empty range, at most limit at a time, and
// returns after every call has finished. Writes made by fn are visible to
// the caller once ForEach returns.
//
// If rc is non-nil each call holds one of its worker slots while running.
// The first error cancels the remaining calls and is returned.
func ForEach(ctx context.Context, ranges []partition.Range, limit int, rc *resource.Controller, fn func(r partition.Range) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, r := range ranges {
		if r.Empty() {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			return fn(r)
		})
	}

	return g.Wait()
}
