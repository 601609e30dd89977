// Package point implements per-sample transforms. Each output sample depends
// only on the input sample at the same position, so every transform is a
// lookup table applied to the grid.
package point

import (
	"errors"
	"fmt"
	"math"

	"github.com/erinpentecost/grayproc/internal/raster"
)

// ErrFactor rejects a contrast factor that is negative, NaN or infinite.
var ErrFactor = errors.New("contrast factor must be a finite non-negative number")

// InverseLUT maps v to 255-v.
func InverseLUT() raster.LUT {
	var lut raster.LUT
	for i := range lut {
		lut[i] = uint8(255 - i)
	}
	return lut
}

// Inverse returns the photographic negative of src.
func Inverse(src *raster.Grid) *raster.Grid {
	lut := InverseLUT()
	return src.Remap(&lut)
}

// BrightnessLUT adds delta to every intensity, saturating at 0 and 255.
func BrightnessLUT(delta int) raster.LUT {
	var lut raster.LUT
	// Any shift past 255 saturates every entry; bounding it keeps i+delta
	// from overflowing.
	delta = min(max(delta, -255), 255)
	for i := range lut {
		lut[i] = raster.ClampInt(i + delta)
	}
	return lut
}

// Brightness shifts every sample of src by delta.
func Brightness(src *raster.Grid, delta int) *raster.Grid {
	lut := BrightnessLUT(delta)
	return src.Remap(&lut)
}

// CheckFactor validates a contrast factor.
func CheckFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return fmt.Errorf("%w: %v", ErrFactor, factor)
	}
	return nil
}

// ContrastLUT multiplies every intensity by factor. Products are truncated
// toward zero and saturate at 255.
func ContrastLUT(factor float64) (raster.LUT, error) {
	var lut raster.LUT
	if err := CheckFactor(factor); err != nil {
		return lut, err
	}
	for i := range lut {
		lut[i] = raster.ClampFloat(float64(i) * factor)
	}
	return lut, nil
}

// Contrast scales every sample of src by factor.
func Contrast(src *raster.Grid, factor float64) (*raster.Grid, error) {
	lut, err := ContrastLUT(factor)
	if err != nil {
		return nil, err
	}
	return src.Remap(&lut), nil
}
