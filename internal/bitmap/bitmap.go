// Package bitmap moves sample grids in and out of image containers. An 8-bit
// paletted BMP (or PNG) is decoded into palette indices and re-encoded in the
// same container with the original palette.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/erinpentecost/grayproc/internal/raster"
)

// ErrUnsupported reports a container or raster layout the engine can't carry.
var ErrUnsupported = errors.New("unsupported image")

// Containers accepted by Decode and written by Encode.
const (
	FormatBMP = "bmp"
	FormatPNG = "png"
)

// Options tunes Decode.
type Options struct {
	// ConvertColor reduces color rasters to 8-bit gray instead of rejecting them.
	ConvertColor bool
}

// Image is a decoded grid plus what is needed to write it back out.
type Image struct {
	Grid *raster.Grid
	// Palette is nil when the source was a plain gray raster.
	Palette color.Palette
	Format  string
}

// Decode reads one image from r.
func Decode(r io.Reader, opts Options) (*Image, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format != FormatBMP && format != FormatPNG {
		return nil, fmt.Errorf("%w: container %q", ErrUnsupported, format)
	}

	b := m.Bounds()
	grid, err := raster.New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	out := &Image{Grid: grid, Format: format}

	switch src := m.(type) {
	case *image.Paletted:
		out.Palette = src.Palette
		for row := 0; row < grid.Height; row++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+row)
			copy(grid.Pix[row*grid.Width:(row+1)*grid.Width], src.Pix[i:i+grid.Width])
		}
	case *image.Gray:
		for row := 0; row < grid.Height; row++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+row)
			copy(grid.Pix[row*grid.Width:(row+1)*grid.Width], src.Pix[i:i+grid.Width])
		}
	default:
		if !opts.ConvertColor {
			return nil, fmt.Errorf("%w: %s holds %T, want an 8-bit gray or paletted raster",
				ErrUnsupported, format, m)
		}
		gray := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
		draw.Draw(gray, gray.Bounds(), m, b.Min, draw.Src)
		copy(grid.Pix, gray.Pix)
	}
	return out, nil
}

// Encode writes g in the container and palette m was decoded from.
func (m *Image) Encode(w io.Writer, g *raster.Grid) error {
	r := image.Rect(0, 0, g.Width, g.Height)

	var dst image.Image
	if m.Palette != nil {
		p := image.NewPaletted(r, fullPalette(m.Palette))
		copy(p.Pix, g.Pix)
		dst = p
	} else {
		gray := image.NewGray(r)
		copy(gray.Pix, g.Pix)
		dst = gray
	}

	switch m.Format {
	case FormatBMP:
		return bmp.Encode(w, dst)
	case FormatPNG:
		return png.Encode(w, dst)
	}
	return fmt.Errorf("%w: container %q", ErrUnsupported, m.Format)
}

// fullPalette pads p to 256 entries with a gray ramp so that every sample
// value names a palette entry.
func fullPalette(p color.Palette) color.Palette {
	if len(p) >= 256 {
		return p[:256]
	}
	out := make(color.Palette, 256)
	copy(out, p)
	for i := len(p); i < len(out); i++ {
		out[i] = color.Gray{Y: uint8(i)}
	}
	return out
}

// ReadFile decodes the image at path.
func ReadFile(path string, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return img, nil
}

// WriteFile encodes g to path in m's container.
func (m *Image) WriteFile(path string, g *raster.Grid) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(out, g); err != nil {
		out.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	return out.Close()
}
