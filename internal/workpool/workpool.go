// Package workpool runs independent, index-addressed tasks on a bounded
// number of goroutines.
package workpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns n if positive, otherwise the number of usable CPUs.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Run calls fn(ctx, i) for every i in [0, n) using at most workers goroutines
// (workers <= 0 means one per CPU). Tasks must only write to state owned by
// their own index. The first error cancels the remaining tasks and is
// returned; a cancelled parent context stops scheduling new tasks.
func Run(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(Workers(workers), n))

	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
