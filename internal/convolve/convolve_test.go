package convolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erinpentecost/grayproc/internal/raster"
)

func fill(t testing.TB, w, h int, v uint8) *raster.Grid {
	t.Helper()
	g, err := raster.New(w, h)
	require.NoError(t, err)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// noise returns a deterministic pseudo-random grid.
func noise(t testing.TB, w, h int) *raster.Grid {
	t.Helper()
	g, err := raster.New(w, h)
	require.NoError(t, err)
	x := uint32(2463534242)
	for i := range g.Pix {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		g.Pix[i] = uint8(x)
	}
	return g
}

// verticalStep is dark on the left half and bright on the right half.
func verticalStep(t testing.TB, w, h int) *raster.Grid {
	t.Helper()
	g, err := raster.New(w, h)
	require.NoError(t, err)
	for row := 0; row < h; row++ {
		for col := w / 2; col < w; col++ {
			g.Set(row, col, 255)
		}
	}
	return g
}

func border(g *raster.Grid) []uint8 {
	var out []uint8
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if row == 0 || col == 0 || row == g.Height-1 || col == g.Width-1 {
				out = append(out, g.At(row, col))
			}
		}
	}
	return out
}

func apply(t *testing.T, src *raster.Grid, n Name) *raster.Grid {
	t.Helper()
	out, err := Apply(context.Background(), src, MustLookup(n), 2)
	require.NoError(t, err)
	return out
}

func TestLibraryFiltersValid(t *testing.T) {
	require.Len(t, Names(), 8)
	for _, n := range Names() {
		f, err := Lookup(n)
		require.NoError(t, err)
		require.Equal(t, n, f.Name)
		require.NoError(t, f.Validate())
	}
	_, err := Lookup("emboss")
	require.Error(t, err)
}

func TestLookupReturnsCopy(t *testing.T) {
	f := MustLookup(Average)
	f.Kernel.Weights[1][1] = 100
	require.Equal(t, 1, MustLookup(Average).Kernel.Weights[1][1])
}

func TestAverageUniform(t *testing.T) {
	out := apply(t, fill(t, 4, 4, 100), Average)
	require.Equal(t, []uint8{
		0, 0, 0, 0,
		0, 100, 100, 0,
		0, 100, 100, 0,
		0, 0, 0, 0,
	}, out.Pix)
}

func TestBorderUntouched(t *testing.T) {
	for _, n := range Names() {
		t.Run(string(n), func(t *testing.T) {
			out := apply(t, noise(t, 9, 7), n)
			for _, v := range border(out) {
				require.Equal(t, uint8(0), v)
			}
		})
	}
}

func TestSmoothingPreservesUniform(t *testing.T) {
	for _, v := range []uint8{0, 1, 100, 254, 255} {
		for _, n := range []Name{Average, Gaussian} {
			out := apply(t, fill(t, 5, 5, v), n)
			require.Equal(t, v, out.At(2, 2), "%s of %d", n, v)
		}
	}
}

func TestEdgeFiltersOnUniform(t *testing.T) {
	for _, n := range []Name{Laplacian, PrewittX, PrewittY, SobelX, SobelY} {
		out := apply(t, fill(t, 5, 5, 180), n)
		require.Equal(t, fill(t, 5, 5, 0).Pix, out.Pix, n)
	}
	hpf := apply(t, fill(t, 5, 5, 180), LaplacianHPF)
	require.Equal(t, uint8(180), hpf.At(2, 2))
}

func TestVerticalStep(t *testing.T) {
	src := verticalStep(t, 4, 3)

	// Columns 1 and 2 straddle the step.
	for _, n := range []Name{PrewittX, SobelX} {
		out := apply(t, src, n)
		require.Equal(t, uint8(255), out.At(1, 1), n)
		require.Equal(t, uint8(255), out.At(1, 2), n)
	}
	for _, n := range []Name{PrewittY, SobelY} {
		out := apply(t, src, n)
		require.Equal(t, uint8(0), out.At(1, 1), n)
	}

	lap := apply(t, src, Laplacian)
	// -3*255 at the dark side, 3*255 at the bright side, over 8.
	require.Equal(t, uint8(95), lap.At(1, 1))
	require.Equal(t, uint8(95), lap.At(1, 2))
}

func TestLaplacianHPFClamps(t *testing.T) {
	spot := fill(t, 3, 3, 0)
	spot.Set(1, 1, 255)
	require.Equal(t, uint8(255), apply(t, spot, LaplacianHPF).At(1, 1))

	hole := fill(t, 3, 3, 255)
	hole.Set(1, 1, 0)
	require.Equal(t, uint8(0), apply(t, hole, LaplacianHPF).At(1, 1))
}

func TestTinyGridsHaveNoInterior(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 5}, {5, 2}} {
		out := apply(t, fill(t, size[0], size[1], 200), Average)
		require.Equal(t, fill(t, size[0], size[1], 0).Pix, out.Pix)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	src := noise(t, 64, 37)
	for _, n := range Names() {
		serial, err := Apply(context.Background(), src, MustLookup(n), 1)
		require.NoError(t, err)
		parallel, err := Apply(context.Background(), src, MustLookup(n), 8)
		require.NoError(t, err)
		require.Equal(t, serial.Pix, parallel.Pix, n)
	}
}

func TestApplyRejectsInvalidFilter(t *testing.T) {
	bad := MustLookup(SobelX)
	bad.Scale = 0
	_, err := Apply(context.Background(), fill(t, 3, 3, 1), bad, 1)
	require.Error(t, err)

	bad = MustLookup(Average)
	bad.Kernel.Divisor = 0
	_, err = Apply(context.Background(), fill(t, 3, 3, 1), bad, 1)
	require.Error(t, err)
}

func TestApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Apply(ctx, noise(t, 16, 16), MustLookup(Average), 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMax(t *testing.T) {
	a, err := raster.FromPix(2, 2, []uint8{1, 200, 30, 0})
	require.NoError(t, err)
	b, err := raster.FromPix(2, 2, []uint8{5, 100, 30, 255})
	require.NoError(t, err)

	out, err := Max(a, b)
	require.NoError(t, err)
	require.Equal(t, []uint8{5, 200, 30, 255}, out.Pix)

	same, err := Max(a, a)
	require.NoError(t, err)
	require.Equal(t, a.Pix, same.Pix)

	_, err = Max(a, fill(t, 2, 3, 0))
	require.ErrorIs(t, err, raster.ErrSizeMismatch)
}

func TestMagnitude(t *testing.T) {
	src := noise(t, 12, 10)
	x := apply(t, src, SobelX)
	y := apply(t, src, SobelY)
	want, err := Max(x, y)
	require.NoError(t, err)

	got, err := Magnitude(context.Background(), src, MustLookup(SobelX), MustLookup(SobelY), 3)
	require.NoError(t, err)
	require.Equal(t, want.Pix, got.Pix)
}

func BenchmarkApply(b *testing.B) {
	src := noise(b, 512, 512)
	f := MustLookup(Gaussian)
	for b.Loop() {
		if _, err := Apply(b.Context(), src, f, 4); err != nil {
			b.Fatal(err)
		}
	}
}
