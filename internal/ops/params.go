package ops

import (
	"fmt"

	"github.com/erinpentecost/grayproc/internal/point"
)

// Params carries the scalar inputs of every operation. Only the field named
// by Operation.Parameter is read; Workers applies to convolutions.
type Params struct {
	Delta     int
	Factor    float64
	Threshold int
	Workers   int
}

// Validate checks the parameters o will use.
func (p Params) Validate(o Operation) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownOperation, o)
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalidParameter, p.Workers)
	}
	switch o.Parameter() {
	case FactorParameter:
		if err := point.CheckFactor(p.Factor); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
	case ThresholdParameter:
		if p.Threshold < 0 || p.Threshold > 255 {
			return fmt.Errorf("%w: threshold %d outside 0..255", ErrInvalidParameter, p.Threshold)
		}
	}
	return nil
}
