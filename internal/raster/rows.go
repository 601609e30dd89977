package raster

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Rows splits the row range [lo, hi) into contiguous bands and calls fn on
// each band, running up to workers bands at once. fn must only write rows
// inside its own band.
func Rows(ctx context.Context, lo, hi, workers int, fn func(lo, hi int) error) error {
	if hi <= lo {
		return nil
	}
	workers = max(workers, 1)
	size := (hi - lo + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := lo; start < hi; start += size {
		end := min(start+size, hi)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(start, end)
		})
	}
	return g.Wait()
}
