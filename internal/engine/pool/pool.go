// Package pool runs a batch of independent calls on a fixed number of workers.
package pool

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Run applies fn to every item using at most workers goroutines and yields
// the results in completion order. Once ctx is done no further item is started.
// Results of calls already running are still yielded. Stopping the iteration
// early cancels dispatch and waits for running calls to return.
func Run[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		if len(items) == 0 {
			return
		}
		workers = max(workers, 1)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		resultsCh := make(chan R, workers)

		go func() {
			defer close(resultsCh)

			var g errgroup.Group
			g.SetLimit(workers)
			for _, item := range items {
				if ctx.Err() != nil {
					break
				}
				g.Go(func() error {
					if ctx.Err() != nil {
						return nil
					}
					resultsCh <- fn(ctx, item)
					return nil
				})
			}
			_ = g.Wait()
		}()

		for res := range resultsCh {
			if !yield(res) {
				cancel()
				for range resultsCh { //nolint:revive // drain so workers can exit
				}
				return
			}
		}
	}
}
