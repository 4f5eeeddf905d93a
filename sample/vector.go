package sample

import (
	"fmt"

	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/series"
)

// RealVector samples a real vector series (points[t] is the coordinate
// vector observed at step t, every point sharing the same dimension) into a
// single folded alphabet of n^d symbols, per coordinate bucketed into n
// intervals exactly as RealScalar, then folded to one integer via ToDec.
// It fails with ErrIntervalsCount when n^d would exceed 256, since a symbol
// must fit in one byte.
func RealVector(points [][]float64, n int) ([]uint8, series.PreprocessingInfo[[]float64], error) {
	info := series.NewPreprocessingInfo[[]float64]()
	if len(points) == 0 {
		return nil, info, nil
	}
	if len(points) < 2 {
		return nil, info, fmt.Errorf("%w: real vector sampling needs at least 2 points", errs.ErrSeriesTooShort)
	}
	if n < 1 {
		return nil, info, fmt.Errorf("%w: intervals=%d", errs.ErrIntervalsCount, n)
	}

	d := len(points[0])
	alphabet := 1
	for i := 0; i < d; i++ {
		alphabet *= n
	}
	if alphabet > 256 {
		return nil, info, fmt.Errorf("%w: intervals=%d", errs.ErrIntervalsCount, alphabet)
	}

	los := make([]float64, d)
	widths := make([]float64, d)
	repr := make([][]float64, d)
	for c := 0; c < d; c++ {
		coord := make([]float64, len(points))
		for t, p := range points {
			coord[t] = p[c]
		}
		lo, hi := widenRange(coord, info.DesampleIndent)
		width := (hi - lo) / float64(n)
		los[c], widths[c] = lo, width

		row := make([]float64, n)
		for k := 0; k < n; k++ {
			row[k] = lo + width*(float64(k)+0.5)
		}
		repr[c] = row
	}

	symbols := make([]uint8, len(points))
	digits := make([]int, d)
	for t, p := range points {
		for c := 0; c < d; c++ {
			digits[c] = int(bucketOf(p[c], los[c], widths[c], n))
		}
		value, err := ToDec(digits, n)
		if err != nil {
			return nil, info, err
		}
		symbols[t] = uint8(value)
	}

	info.Alphabet = alphabet
	info.Sampled = true
	info.DesampleTable = repr
	return symbols, info, nil
}

// InverseRealVector maps symbols back to coordinate vectors by unfolding
// each symbol into per-coordinate digits and looking each up in info's
// desample table.
func InverseRealVector(symbols []uint8, n int, info series.PreprocessingInfo[[]float64]) ([][]float64, error) {
	d := len(info.DesampleTable)
	out := make([][]float64, len(symbols))
	for t, s := range symbols {
		if !info.Sampled || d == 0 {
			out[t] = []float64{float64(s)}
			continue
		}
		digits, err := FromDec(int(s), n, d)
		if err != nil {
			return nil, err
		}
		point := make([]float64, d)
		for c, dig := range digits {
			point[c] = info.DesampleTable[c][dig]
		}
		out[t] = point
	}
	return out, nil
}

// IntVector is not implemented: the integer vector sampling strategy of
// §4.2 is explicitly out of scope for this release.
func IntVector(points [][]int, n int) ([]uint8, series.PreprocessingInfo[[]int], error) {
	return nil, series.NewPreprocessingInfo[[]int](), fmt.Errorf("%w: integer vector sampling", errs.ErrNotImplemented)
}
