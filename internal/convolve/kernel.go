package convolve

import (
	"fmt"
	"slices"
)

// Kernel is a 3x3 weight matrix. The effective weight of a cell is
// Weights[m][n] / Divisor, which keeps normalized kernels exact.
type Kernel struct {
	Weights [3][3]int
	Divisor int
}

// Policy selects how a weighted sum becomes an output sample.
type Policy int

const (
	// Direct truncates the sum toward zero without clamping.
	Direct Policy = iota
	// ScaledMagnitude takes |trunc(sum)| / Scale.
	ScaledMagnitude
	// Clamped truncates the sum and saturates it into [0, 255].
	Clamped
)

func (p Policy) String() string {
	switch p {
	case Direct:
		return "direct"
	case ScaledMagnitude:
		return "scaled-magnitude"
	case Clamped:
		return "clamped"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Filter pairs a kernel with its post-processing policy.
type Filter struct {
	Name   Name
	Kernel Kernel
	Policy Policy
	// Scale divides the magnitude under ScaledMagnitude.
	Scale int
}

// Validate rejects filters the engine cannot evaluate.
func (f Filter) Validate() error {
	if f.Kernel.Divisor <= 0 {
		return fmt.Errorf("filter %q: divisor %d must be positive", f.Name, f.Kernel.Divisor)
	}
	switch f.Policy {
	case Direct, Clamped:
	case ScaledMagnitude:
		if f.Scale <= 0 {
			return fmt.Errorf("filter %q: scale %d must be positive", f.Name, f.Scale)
		}
	default:
		return fmt.Errorf("filter %q: unknown policy %v", f.Name, f.Policy)
	}
	return nil
}

// Name identifies a filter in the library.
type Name string

const (
	Average      Name = "average"
	Gaussian     Name = "gaussian"
	Laplacian    Name = "laplacian"
	LaplacianHPF Name = "laplacian-hpf"
	PrewittX     Name = "prewitt-x"
	PrewittY     Name = "prewitt-y"
	SobelX       Name = "sobel-x"
	SobelY       Name = "sobel-y"
)

var library = map[Name]Filter{
	Average: {
		Kernel: Kernel{Weights: [3][3]int{
			{1, 1, 1},
			{1, 1, 1},
			{1, 1, 1},
		}, Divisor: 9},
		Policy: Direct,
	},
	Gaussian: {
		Kernel: Kernel{Weights: [3][3]int{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		}, Divisor: 16},
		Policy: Direct,
	},
	Laplacian: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, -1, -1},
			{-1, 8, -1},
			{-1, -1, -1},
		}, Divisor: 1},
		Policy: ScaledMagnitude,
		Scale:  8,
	},
	LaplacianHPF: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, -1, -1},
			{-1, 9, -1},
			{-1, -1, -1},
		}, Divisor: 1},
		Policy: Clamped,
	},
	PrewittX: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, 0, 1},
			{-1, 0, 1},
			{-1, 0, 1},
		}, Divisor: 1},
		Policy: ScaledMagnitude,
		Scale:  3,
	},
	PrewittY: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, -1, -1},
			{0, 0, 0},
			{1, 1, 1},
		}, Divisor: 1},
		Policy: ScaledMagnitude,
		Scale:  3,
	},
	SobelX: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		}, Divisor: 1},
		Policy: ScaledMagnitude,
		Scale:  4,
	},
	SobelY: {
		Kernel: Kernel{Weights: [3][3]int{
			{-1, -2, -1},
			{0, 0, 0},
			{1, 2, 1},
		}, Divisor: 1},
		Policy: ScaledMagnitude,
		Scale:  4,
	},
}

// Lookup returns a copy of the named library filter.
func Lookup(n Name) (Filter, error) {
	f, ok := library[n]
	if !ok {
		return Filter{}, fmt.Errorf("unknown filter %q", n)
	}
	f.Name = n
	return f, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(n Name) Filter {
	f, err := Lookup(n)
	if err != nil {
		panic(err)
	}
	return f
}

// Names lists the library filters in sorted order.
func Names() []Name {
	names := make([]Name, 0, len(library))
	for n := range library {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
