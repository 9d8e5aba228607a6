package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every item with at most workers goroutines in
// flight. workers <= 1 runs sequentially in slice order. The first error
// cancels ctx for the remaining items and is returned.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(context.Context, T) error) error {
	if workers <= 1 {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(ctx, item); err != nil {
				return err
			}
		}
		return nil
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return action(gctx, item)
		})
	}
	return group.Wait()
}
