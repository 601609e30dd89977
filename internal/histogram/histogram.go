// Package histogram builds 256-bin intensity histograms and the remappings
// derived from them: stretching, equalization and binarization.
package histogram

import (
	"bufio"
	"fmt"
	"io"

	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/raster"
)

// Histogram counts how many samples hold each intensity.
type Histogram [256]int

// Build counts every sample of g.
func Build(g *raster.Grid) *Histogram {
	var h Histogram
	for _, v := range g.Pix {
		h[v]++
	}
	return &h
}

// Total is the number of samples counted.
func (h *Histogram) Total() int {
	var n int
	for _, c := range h {
		n += c
	}
	return n
}

// Bounds returns the lowest and highest occupied intensities.
// ok is false for an empty histogram.
func (h *Histogram) Bounds() (low, high uint8, ok bool) {
	lo, hi := -1, -1
	for i, c := range h {
		if c == 0 {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	if lo < 0 {
		return 0, 0, false
	}
	return uint8(lo), uint8(hi), true
}

// Dump writes one "intensity count" line per bin.
func (h *Histogram) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range h {
		if _, err := fmt.Fprintf(bw, "%d %d\n", i, c); err != nil {
			return fmt.Errorf("write histogram bin %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// StretchLUT linearly maps [low, high] onto [0, 255], truncating toward zero.
// A histogram with a single occupied bin yields the identity table.
func StretchLUT(h *Histogram) raster.LUT {
	low, high, ok := h.Bounds()
	if !ok || low == high {
		return raster.Identity()
	}
	logging.Logger().Debug("stretching", "low", low, "high", high)

	var lut raster.LUT
	span := int(high) - int(low)
	for i := range lut {
		lut[i] = raster.ClampInt((i - int(low)) * 255 / span)
	}
	return lut
}

// Stretch expands the occupied intensity range of src to fill [0, 255].
func Stretch(src *raster.Grid) *raster.Grid {
	lut := StretchLUT(Build(src))
	return src.Remap(&lut)
}

// EqualizeLUT maps each intensity to floor(255 * C(k) / N), where C is the
// cumulative histogram and N the sample count.
func EqualizeLUT(h *Histogram) raster.LUT {
	total := h.Total()
	if total == 0 {
		return raster.Identity()
	}

	var (
		lut raster.LUT
		cum int
	)
	for i, c := range h {
		cum += c
		lut[i] = raster.ClampInt(255 * cum / total)
	}
	return lut
}

// Equalize flattens the intensity distribution of src.
func Equalize(src *raster.Grid) *raster.Grid {
	lut := EqualizeLUT(Build(src))
	return src.Remap(&lut)
}

// BinarizeLUT sends intensities below threshold to 0 and the rest to 255.
func BinarizeLUT(threshold uint8) raster.LUT {
	var lut raster.LUT
	for i := int(threshold); i < len(lut); i++ {
		lut[i] = 255
	}
	return lut
}

// Binarize thresholds src into a black and white grid.
func Binarize(src *raster.Grid, threshold uint8) *raster.Grid {
	lut := BinarizeLUT(threshold)
	return src.Remap(&lut)
}
