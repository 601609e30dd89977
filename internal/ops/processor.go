package ops

import (
	"context"
	"fmt"
	"io"

	"github.com/erinpentecost/grayproc/internal/convolve"
	"github.com/erinpentecost/grayproc/internal/histogram"
	"github.com/erinpentecost/grayproc/internal/logging"
	"github.com/erinpentecost/grayproc/internal/point"
	"github.com/erinpentecost/grayproc/internal/raster"
)

// Processor turns one input grid into one freshly allocated output grid.
type Processor interface {
	Process(ctx context.Context, src *raster.Grid) (*raster.Grid, error)
}

// InverseProcessor maps every sample v to 255-v.
type InverseProcessor struct{}

func (p *InverseProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return point.Inverse(src), nil
}

// BrightnessProcessor shifts every sample by Delta, saturating.
type BrightnessProcessor struct {
	Delta int
}

func (p *BrightnessProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return point.Brightness(src, p.Delta), nil
}

// ContrastProcessor scales every sample by Factor, saturating.
type ContrastProcessor struct {
	Factor float64
}

func (p *ContrastProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return point.Contrast(src, p.Factor)
}

// StretchProcessor expands the occupied intensity range to [0, 255].
type StretchProcessor struct{}

func (p *StretchProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return histogram.Stretch(src), nil
}

// EqualizeProcessor flattens the intensity histogram.
type EqualizeProcessor struct{}

func (p *EqualizeProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return histogram.Equalize(src), nil
}

// BinarizeProcessor thresholds at a caller-chosen Threshold.
type BinarizeProcessor struct {
	Threshold uint8
}

func (p *BinarizeProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	return histogram.Binarize(src, p.Threshold), nil
}

// GonzalezProcessor binarizes at the threshold estimated from src itself.
// The chosen threshold is kept in Threshold after Process returns.
type GonzalezProcessor struct {
	Threshold uint8
}

func (p *GonzalezProcessor) Process(_ context.Context, src *raster.Grid) (*raster.Grid, error) {
	p.Threshold = histogram.Gonzalez(histogram.Build(src))
	logging.Logger().Info("estimated threshold", "threshold", p.Threshold)
	return histogram.Binarize(src, p.Threshold), nil
}

// ConvolveProcessor applies one library filter.
type ConvolveProcessor struct {
	Filter  convolve.Filter
	Workers int
}

func (p *ConvolveProcessor) Process(ctx context.Context, src *raster.Grid) (*raster.Grid, error) {
	return convolve.Apply(ctx, src, p.Filter, p.Workers)
}

// EdgeProcessor merges an x and a y edge response into one magnitude map.
type EdgeProcessor struct {
	X, Y    convolve.Filter
	Workers int
}

func (p *EdgeProcessor) Process(ctx context.Context, src *raster.Grid) (*raster.Grid, error) {
	return convolve.Magnitude(ctx, src, p.X, p.Y, p.Workers)
}

var filters = map[Operation]convolve.Name{
	AverageConvolution:   convolve.Average,
	GaussianConvolution:  convolve.Gaussian,
	LaplacianConvolution: convolve.Laplacian,
	LaplacianHPF:         convolve.LaplacianHPF,
	PrewittX:             convolve.PrewittX,
	PrewittY:             convolve.PrewittY,
	SobelX:               convolve.SobelX,
	SobelY:               convolve.SobelY,
}

// NewProcessor validates p and builds the processor for o. The histogram
// dump has no processor.
func NewProcessor(o Operation, p Params) (Processor, error) {
	if err := p.Validate(o); err != nil {
		return nil, err
	}
	switch o {
	case Inverse:
		return &InverseProcessor{}, nil
	case Brightness:
		return &BrightnessProcessor{Delta: p.Delta}, nil
	case Contrast:
		return &ContrastProcessor{Factor: p.Factor}, nil
	case GonzalezBinarization:
		return &GonzalezProcessor{}, nil
	case ManualBinarization:
		return &BinarizeProcessor{Threshold: uint8(p.Threshold)}, nil
	case Stretching:
		return &StretchProcessor{}, nil
	case Equalization:
		return &EqualizeProcessor{}, nil
	case PrewittCombined:
		return &EdgeProcessor{
			X:       convolve.MustLookup(convolve.PrewittX),
			Y:       convolve.MustLookup(convolve.PrewittY),
			Workers: p.Workers,
		}, nil
	case SobelCombined:
		return &EdgeProcessor{
			X:       convolve.MustLookup(convolve.SobelX),
			Y:       convolve.MustLookup(convolve.SobelY),
			Workers: p.Workers,
		}, nil
	}
	if name, ok := filters[o]; ok {
		return &ConvolveProcessor{Filter: convolve.MustLookup(name), Workers: p.Workers}, nil
	}
	return nil, fmt.Errorf("%w: %v has no processor", ErrUnknownOperation, o)
}

// Run applies o to src. The histogram dump writes its counts to report and
// returns a nil grid; every other operation ignores report.
func Run(ctx context.Context, o Operation, src *raster.Grid, p Params, report io.Writer) (*raster.Grid, error) {
	if o == HistogramDump {
		if err := p.Validate(o); err != nil {
			return nil, err
		}
		if err := histogram.Build(src).Dump(report); err != nil {
			return nil, fmt.Errorf("dump histogram: %w", err)
		}
		return nil, nil
	}

	proc, err := NewProcessor(o, p)
	if err != nil {
		return nil, err
	}
	logging.Logger().Debug("running operation", "op", o, "size", src.String())
	out, err := proc.Process(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", o, err)
	}
	return out, nil
}
