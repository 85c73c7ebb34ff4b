// Package pool runs independent units of work on a bounded set of goroutines.
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run calls fn once per item with at most width calls in flight. Items are
// started in order but may complete in any order. The first error returned by
// fn cancels the context passed to the remaining calls and is returned; items
// not yet started when the context is done are skipped.
func Run[T any](ctx context.Context, width int, items []T, fn func(ctx context.Context, item T) error) error {
	if width <= 0 {
		width = runtime.GOMAXPROCS(0)
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(width)
	for _, item := range items {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return fn(groupCtx, item)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
