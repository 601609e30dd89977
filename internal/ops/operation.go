// Package ops is the operation selection boundary: it names the closed set of
// operations, validates their parameters and runs exactly one of them over a
// grid.
package ops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrUnknownOperation reports an operation name or code outside the menu.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidParameter reports a scalar an operation cannot accept.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Operation is one selectable transform. Values double as menu codes.
type Operation int

const (
	Inverse Operation = iota + 1
	Brightness
	Contrast
	HistogramDump
	GonzalezBinarization
	ManualBinarization
	Stretching
	Equalization
	AverageConvolution
	GaussianConvolution
	LaplacianConvolution
	PrewittX
	PrewittY
	PrewittCombined
	SobelX
	SobelY
	SobelCombined
	LaplacianHPF
)

var names = map[Operation]string{
	Inverse:              "inverse",
	Brightness:           "brightness",
	Contrast:             "contrast",
	HistogramDump:        "histogram",
	GonzalezBinarization: "gonzalez",
	ManualBinarization:   "binarize",
	Stretching:           "stretch",
	Equalization:         "equalize",
	AverageConvolution:   "average",
	GaussianConvolution:  "gaussian",
	LaplacianConvolution: "laplacian",
	PrewittX:             "prewitt-x",
	PrewittY:             "prewitt-y",
	PrewittCombined:      "prewitt",
	SobelX:               "sobel-x",
	SobelY:               "sobel-y",
	SobelCombined:        "sobel",
	LaplacianHPF:         "laplacian-hpf",
}

// All lists every operation in menu order.
func All() []Operation {
	return lo.RangeFrom(Inverse, len(names))
}

func (o Operation) String() string {
	if n, ok := names[o]; ok {
		return n
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Valid reports whether o is one of the defined operations.
func (o Operation) Valid() bool {
	_, ok := names[o]
	return ok
}

// Parse accepts an operation name (case-insensitive) or its menu code.
func Parse(s string) (Operation, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		if op := Operation(code); op.Valid() {
			return op, nil
		}
		return 0, fmt.Errorf("%w: code %d", ErrUnknownOperation, code)
	}
	op, ok := lo.FindKeyBy(names, func(_ Operation, name string) bool {
		return strings.EqualFold(name, s)
	})
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return op, nil
}

// ProducesImage is false only for the histogram dump, which reports counts
// instead of writing a grid.
func (o Operation) ProducesImage() bool {
	return o != HistogramDump
}

// Parameter names the scalar an operation needs, if any.
type Parameter int

const (
	NoParameter Parameter = iota
	DeltaParameter
	FactorParameter
	ThresholdParameter
)

// Parameter reports which scalar o consumes.
func (o Operation) Parameter() Parameter {
	switch o {
	case Brightness:
		return DeltaParameter
	case Contrast:
		return FactorParameter
	case ManualBinarization:
		return ThresholdParameter
	}
	return NoParameter
}
