// Package raster holds the 8-bit sample grid every transform reads and writes.
package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensions reports a grid whose declared size and buffer disagree.
	ErrDimensions = errors.New("invalid grid dimensions")
	// ErrSizeMismatch reports two grids that should share dimensions but don't.
	ErrSizeMismatch = errors.New("grid size mismatch")
)

// Grid is a single-channel 8-bit raster stored row-major.
// Sample (row, col) lives at Pix[row*Width+col].
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zero-filled grid.
func New(width, height int) (*Grid, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// FromPix wraps pix without copying it.
func FromPix(width, height int, pix []uint8) (*Grid, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d samples, got %d",
			ErrDimensions, width, height, width*height, len(pix))
	}
	return &Grid{Width: width, Height: height, Pix: pix}, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if width > int(^uint(0)>>1)/height {
		return fmt.Errorf("%w: %dx%d overflows", ErrDimensions, width, height)
	}
	return nil
}

// Len is the number of samples.
func (g *Grid) Len() int { return len(g.Pix) }

// Index converts (row, col) into an offset in Pix. It does not check bounds.
func (g *Grid) Index(row, col int) int { return row*g.Width + col }

// In reports whether (row, col) addresses a sample of g.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// At returns the sample at (row, col), or 0 outside the grid.
func (g *Grid) At(row, col int) uint8 {
	if !g.In(row, col) {
		return 0
	}
	return g.Pix[g.Index(row, col)]
}

// Set writes the sample at (row, col). Writes outside the grid are dropped.
func (g *Grid) Set(row, col int, v uint8) {
	if !g.In(row, col) {
		return
	}
	g.Pix[g.Index(row, col)] = v
}

// Blank returns a zero-filled grid with g's dimensions.
func (g *Grid) Blank() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Pix:    make([]uint8, len(g.Pix)),
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := g.Blank()
	copy(out.Pix, g.Pix)
	return out
}

// SameSize returns ErrSizeMismatch unless g and o have equal dimensions.
func (g *Grid) SameSize(o *Grid) error {
	if g.Width != o.Width || g.Height != o.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrSizeMismatch, g.Width, g.Height, o.Width, o.Height)
	}
	return nil
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}
