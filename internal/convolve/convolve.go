// Package convolve applies 3x3 neighborhood filters to a sample grid.
//
// The kernel is correlated with the image, not flipped. Only interior
// samples are computed: the outermost ring of the output keeps the zero
// value it was allocated with.
package convolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/raster"
)

// Apply filters src with f using up to workers row bands at once.
func Apply(ctx context.Context, src *raster.Grid, f Filter, workers int) (*raster.Grid, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	dst := src.Blank()
	if src.Width < 3 || src.Height < 3 {
		return dst, nil
	}

	logging.Logger().Debug("convolving",
		"filter", f.Name, "policy", f.Policy, "size", src.String(), "workers", workers)

	err := raster.Rows(ctx, 1, src.Height-1, workers, func(lo, hi int) error {
		f.rows(src, dst, lo, hi)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("convolve %q: %w", f.Name, err)
	}
	return dst, nil
}

func (f Filter) rows(src, dst *raster.Grid, lo, hi int) {
	w := src.Width
	k := &f.Kernel.Weights
	div := float64(f.Kernel.Divisor)
	for row := lo; row < hi; row++ {
		for col := 1; col < w-1; col++ {
			var sum float64
			for m := -1; m <= 1; m++ {
				base := (row+m)*w + col
				for n := -1; n <= 1; n++ {
					sum += float64(src.Pix[base+n]) * float64(k[m+1][n+1])
				}
			}
			dst.Pix[row*w+col] = f.finish(sum / div)
		}
	}
}

func (f Filter) finish(sum float64) uint8 {
	switch f.Policy {
	case ScaledMagnitude:
		v := int(sum)
		if v < 0 {
			v = -v
		}
		return raster.ClampInt(v / f.Scale)
	case Clamped:
		return raster.ClampFloat(sum)
	default:
		// Normalized kernels keep the sum in range; anything else wraps.
		return uint8(int(sum))
	}
}

// Max combines two directional edge responses into one magnitude map by
// taking the larger sample at every position.
func Max(a, b *raster.Grid) (*raster.Grid, error) {
	if err := a.SameSize(b); err != nil {
		return nil, err
	}
	out := a.Blank()
	for i := range out.Pix {
		out.Pix[i] = max(a.Pix[i], b.Pix[i])
	}
	return out, nil
}

// Magnitude runs the x and y filters over src concurrently and merges them
// with Max.
func Magnitude(ctx context.Context, src *raster.Grid, x, y Filter, workers int) (*raster.Grid, error) {
	var gx, gy *raster.Grid
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		gx, err = Apply(ctx, src, x, workers)
		return err
	})
	g.Go(func() (err error) {
		gy, err = Apply(ctx, src, y, workers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Max(gx, gy)
}
