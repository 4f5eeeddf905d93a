// Package sample implements §4.2's Sampler: the mapping from a raw scalar or
// vector series onto a zero-based symbol alphabet, plus the inverse
// (desample) mapping back to the original scale.
//
// The widen-then-bucket strategy is adapted from the teacher's gorilla
// float encoder (internal/encoding/numeric_gorilla.go), which likewise
// widens a value's range before quantizing it into a fixed-width bucket.
package sample

import (
	"fmt"

	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/series"
)

const defaultIndent = 0.1

// RealScalar samples a real scalar series into n symbols, widening the
// observed [min, max] range by a fractional indent before bucketing so that
// forecast values slightly outside the historical range still land in a
// valid bucket (§4.2's widening rule, exercised by the "real scalar sampler
// widening bound" property in §8).
func RealScalar(xs []float64, n int) ([]uint8, series.PreprocessingInfo[float64], error) {
	info := series.NewPreprocessingInfo[float64]()
	if len(xs) == 0 {
		return nil, info, nil
	}
	if len(xs) < 2 {
		return nil, info, fmt.Errorf("%w: real scalar sampling needs at least 2 points", errs.ErrSeriesTooShort)
	}
	if n < 1 || n > 256 {
		return nil, info, fmt.Errorf("%w: intervals=%d", errs.ErrIntervalsCount, n)
	}

	lo, hi := widenRange(xs, info.DesampleIndent)
	width := (hi - lo) / float64(n)

	symbols := make([]uint8, len(xs))
	for i, x := range xs {
		symbols[i] = bucketOf(x, lo, width, n)
	}

	repr := make([]float64, n)
	for k := 0; k < n; k++ {
		repr[k] = lo + width*(float64(k)+0.5)
	}

	info.Alphabet = n
	info.Sampled = true
	info.DesampleTable = [][]float64{repr}
	return symbols, info, nil
}

// InverseRealScalar maps symbols back to representative real values via
// info's desample table. A scalar real inverse on a non-sampled series
// (info.Sampled == false) is the identity cast, per §4.2.
func InverseRealScalar(symbols []uint8, info series.PreprocessingInfo[float64]) []float64 {
	out := make([]float64, len(symbols))
	if !info.Sampled || len(info.DesampleTable) == 0 {
		for i, s := range symbols {
			out[i] = float64(s)
		}
		return out
	}
	repr := info.DesampleTable[0]
	for i, s := range symbols {
		out[i] = repr[int(s)]
	}
	return out
}

// IntScalar samples an integer scalar series by shifting it so its minimum
// becomes zero. It fails with ErrIntervalsCount if the observed range does
// not fit in a single byte symbol.
func IntScalar(xs []int) ([]uint8, series.PreprocessingInfo[int], error) {
	info := series.NewPreprocessingInfo[int]()
	if len(xs) == 0 {
		return nil, info, nil
	}

	min, max := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	span := max - min + 1
	if span > 256 {
		return nil, info, fmt.Errorf("%w: intervals=%d", errs.ErrIntervalsCount, span)
	}

	symbols := make([]uint8, len(xs))
	for i, x := range xs {
		symbols[i] = uint8(x - min)
	}

	repr := make([]float64, span)
	for k := 0; k < span; k++ {
		repr[k] = float64(min + k)
	}

	info.Alphabet = span
	info.Sampled = true
	info.DesampleTable = [][]float64{repr}
	return symbols, info, nil
}

// InverseIntScalar maps symbols back to original integer values via info's
// desample table.
func InverseIntScalar(symbols []uint8, info series.PreprocessingInfo[int]) []int {
	out := make([]int, len(symbols))
	if !info.Sampled || len(info.DesampleTable) == 0 {
		for i, s := range symbols {
			out[i] = int(s)
		}
		return out
	}
	repr := info.DesampleTable[0]
	for i, s := range symbols {
		out[i] = int(repr[int(s)])
	}
	return out
}

// widenRange returns the [min, max] range of xs padded on both ends by
// indent * range (the range is taken as 1 when the series is constant, so
// the pad is indent and no bucket has zero width).
func widenRange(xs []float64, indent float64) (lo, hi float64) {
	min, max := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}
	pad := span * indent
	return min - pad, max + pad
}

// bucketOf returns the clamped bucket index of x within [lo, lo+width*n).
func bucketOf(x, lo, width float64, n int) uint8 {
	idx := int((x - lo) / width)
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return uint8(idx)
}
