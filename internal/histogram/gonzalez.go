package histogram

import "github.com/erinpentecost/grayproc/internal/logging"

// MaxIterations bounds the Gonzalez search. Well separated bimodal
// histograms settle in a handful of rounds.
const MaxIterations = 256

// Gonzalez estimates a binarization threshold by the iterative
// mean-of-means method of Gonzalez and Woods. Starting from the midpoint of
// the occupied range, the samples are split into [low, T] and (T, high] and
// T moves to the average of the two class means, until it moves by less
// than 2.
func Gonzalez(h *Histogram) uint8 {
	low, high, ok := h.Bounds()
	if !ok {
		return 0
	}
	if low == high {
		return low
	}

	lo, hi := int(low), int(high)
	t := (lo + hi) / 2
	for iter := 1; iter <= MaxIterations; iter++ {
		var n1, s1, n2, s2 int
		for k := lo; k <= t; k++ {
			n1 += h[k]
			s1 += k * h[k]
		}
		for k := t + 1; k <= hi; k++ {
			n2 += h[k]
			s2 += k * h[k]
		}
		m1 := s1 / max(n1, 1)
		m2 := s2 / max(n2, 1)
		next := (m1 + m2) / 2

		logging.Logger().Debug("gonzalez iteration",
			"iter", iter, "threshold", t, "mean1", m1, "mean2", m2, "next", next)

		done := abs(next-t) < 2
		t = next
		if done {
			break
		}
	}
	return uint8(t)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
