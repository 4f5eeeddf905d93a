package pointwise

import (
	"fmt"

	"github.com/ictforecast/core/errs"
)

// Sparse is the Sparse(k) decorator of §4.8: build k sub-series by taking
// every k-th element starting at offsets 0..k-1, forecast each to horizon
// ceil(h/k), then interleave the results to fill horizon h. The dense
// full-series forecast supplies the first ceil(h/k) steps, since those are
// the nearest-term predictions regardless of k.
type Sparse struct {
	Inner *Basic
	K     int
}

// Forecast implements the interleaving rule above. K must be >= 1; K == 1
// degenerates to the plain Basic forecast.
func (s *Sparse) Forecast(history []float64, horizon int, names []string) (map[string][][]float64, error) {
	if s.K < 1 {
		return nil, fmt.Errorf("%w: sparse k=%d must be >= 1", errs.ErrInvalidArgument, s.K)
	}
	if s.K == 1 {
		return s.Inner.Forecast(history, horizon, names)
	}

	subHorizon := (horizon + s.K - 1) / s.K

	full, err := s.Inner.Forecast(history, subHorizon, names)
	if err != nil {
		return nil, err
	}

	subForecasts := make([]map[string][][]float64, s.K)
	for offset := 0; offset < s.K; offset++ {
		sub := subSeries(history, offset, s.K)
		f, err := s.Inner.Forecast(sub, subHorizon, names)
		if err != nil {
			return nil, err
		}
		subForecasts[offset] = f
	}

	out := make(map[string][][]float64, len(full))
	for name, denseSteps := range full {
		result := make([][]float64, 0, horizon)
		for i := 0; i < subHorizon && i < horizon; i++ {
			result = append(result, denseSteps[i])
		}

		for i := 0; len(result) < horizon; i++ {
			offset := i % s.K
			step := i / s.K
			steps := subForecasts[offset][name]
			if step >= len(steps) {
				break
			}
			result = append(result, steps[step])
		}
		out[name] = result
	}
	return out, nil
}

// subSeries returns every k-th element of xs starting at offset.
func subSeries(xs []float64, offset, k int) []float64 {
	var out []float64
	for i := offset; i < len(xs); i += k {
		out = append(out, xs[i])
	}
	return out
}
