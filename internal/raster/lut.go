package raster

import "math"

// LUT maps every input intensity to an output intensity.
type LUT [256]uint8

// Identity returns the lookup table that leaves every sample unchanged.
func Identity() LUT {
	var lut LUT
	for i := range lut {
		lut[i] = uint8(i)
	}
	return lut
}

// Remap returns a new grid with every sample passed through lut.
func (g *Grid) Remap(lut *LUT) *Grid {
	out := g.Blank()
	for i, v := range g.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// ClampInt saturates v into [0, 255].
func ClampInt(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// ClampFloat truncates v toward zero and saturates it into [0, 255].
// NaN maps to 0.
func ClampFloat(v float64) uint8 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
