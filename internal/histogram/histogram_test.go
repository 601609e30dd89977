package histogram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erinpentecost/grayproc/internal/raster"
)

func grid(t *testing.T, w, h int, pix ...uint8) *raster.Grid {
	t.Helper()
	g, err := raster.FromPix(w, h, pix)
	require.NoError(t, err)
	return g
}

func fill(t *testing.T, w, h int, v uint8) *raster.Grid {
	t.Helper()
	g, err := raster.New(w, h)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestBuildConservesSamples(t *testing.T) {
	for _, g := range []*raster.Grid{
		fill(t, 4, 4, 100),
		grid(t, 3, 2, 0, 255, 7, 7, 7, 9),
		fill(t, 31, 17, 0),
	} {
		h := Build(g)
		require.Equal(t, g.Width*g.Height, h.Total())
	}

	h := Build(grid(t, 3, 2, 0, 255, 7, 7, 7, 9))
	require.Equal(t, 3, h[7])
	require.Equal(t, 1, h[255])
	require.Equal(t, 0, h[8])
}

func TestBounds(t *testing.T) {
	low, high, ok := Build(grid(t, 4, 1, 40, 12, 200, 13)).Bounds()
	require.True(t, ok)
	require.Equal(t, uint8(12), low)
	require.Equal(t, uint8(200), high)

	low, high, ok = Build(fill(t, 2, 2, 77)).Bounds()
	require.True(t, ok)
	require.Equal(t, low, high)

	var empty Histogram
	_, _, ok = empty.Bounds()
	require.False(t, ok)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(grid(t, 2, 1, 3, 3)).Dump(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 256)
	require.Equal(t, "0 0", lines[0])
	require.Equal(t, "3 2", lines[3])
	require.Equal(t, "255 0", lines[255])
}

func TestStretch(t *testing.T) {
	out := Stretch(grid(t, 3, 1, 50, 100, 150))
	require.Equal(t, []uint8{0, 127, 255}, out.Pix)

	// Single occupied bin leaves the input untouched.
	flat := fill(t, 3, 3, 90)
	require.Equal(t, flat.Pix, Stretch(flat).Pix)

	full := grid(t, 2, 1, 0, 255)
	require.Equal(t, full.Pix, Stretch(full).Pix)
}

func TestEqualize(t *testing.T) {
	out := Equalize(grid(t, 4, 1, 10, 10, 20, 30))
	// C = 2, 3, 4 of 4 samples.
	require.Equal(t, []uint8{127, 127, 191, 255}, out.Pix)

	flat := Equalize(fill(t, 3, 3, 42))
	require.Equal(t, fill(t, 3, 3, 255).Pix, flat.Pix)
}

func TestEqualizeStableOnEqualizedInput(t *testing.T) {
	g, err := raster.New(16, 16)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	once := Equalize(g)
	twice := Equalize(once)

	for i := range once.Pix {
		d := int(once.Pix[i]) - int(twice.Pix[i])
		require.LessOrEqual(t, abs(d), 1)
	}
}

func TestBinarize(t *testing.T) {
	out := Binarize(grid(t, 4, 1, 0, 99, 100, 255), 100)
	require.Equal(t, []uint8{0, 0, 255, 255}, out.Pix)

	require.Equal(t, fill(t, 4, 4, 255).Pix, Binarize(fill(t, 4, 4, 100), 100).Pix)
	require.Equal(t, fill(t, 2, 2, 255).Pix, Binarize(fill(t, 2, 2, 0), 0).Pix)
}
