// Package selector implements §4.10's compressor selector: cheaply pick the
// best T compressors out of a candidate set on a prefix of the series.
package selector

import (
	"fmt"
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/ictforecast/core/compress"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/sample"
	"github.com/ictforecast/core/series"
)

// Selector picks the T compressors with the smallest observed code length
// on a history prefix.
type Selector struct {
	Pool *compress.Pool
}

// candidateLength pairs a candidate name with its chosen code length, for
// sorting.
type candidateLength struct {
	name string
	bits float64
}

// SelectReal runs the selector over a real-valued history, trying every
// quantization level in quants and keeping, per compressor, the minimum
// corrected length (§4.10's per-level correction normalizes bits across
// alphabets so different quantizations can be compared directly).
func (s *Selector) SelectReal(history []float64, share float64, difference int, quants []int, candidates []string, target int) ([]string, error) {
	if len(quants) == 0 {
		return nil, fmt.Errorf("%w: real selector needs at least one quantization level", errs.ErrInvalidArgument)
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}
	if target < 0 || target > len(candidates) {
		return nil, fmt.Errorf("%w: target=%d out of [0, %d]", errs.ErrSelectorError, target, len(candidates))
	}

	diffed := differencePrefix(history, share, difference)
	if len(diffed) == 0 {
		return pickZeroLength(candidates, target), nil
	}

	qmax := slices.Max(quants)
	lengths := make([]candidateLength, 0, len(candidates))
	for _, name := range candidates {
		corrected := make(stats.Float64Data, 0, len(quants))
		for _, q := range quants {
			symbols, _, err := sample.RealScalar(diffed, q)
			if err != nil {
				return nil, fmt.Errorf("selector: sampling at Q=%d: %w", q, err)
			}
			bits, err := s.Pool.Compress(name, symbols)
			if err != nil {
				return nil, fmt.Errorf("selector: compressor %q: %w", name, err)
			}
			correction := (math.Log2(float64(qmax)) - math.Log2(float64(q))) * float64(len(diffed))
			corrected = append(corrected, float64(bits)+correction)
		}
		best, err := corrected.Min()
		if err != nil {
			return nil, fmt.Errorf("selector: minimum over quantization levels: %w", err)
		}
		lengths = append(lengths, candidateLength{name: name, bits: best})
	}

	return rankAndTake(lengths, target), nil
}

// SelectDiscrete runs the selector over an already-discrete history (values
// cast directly to symbols, no quantization, zero correction).
func (s *Selector) SelectDiscrete(history []float64, share float64, difference int, candidates []string, target int) ([]string, error) {
	if len(candidates) == 0 {
		return []string{}, nil
	}
	if target < 0 || target > len(candidates) {
		return nil, fmt.Errorf("%w: target=%d out of [0, %d]", errs.ErrSelectorError, target, len(candidates))
	}

	diffed := differencePrefix(history, share, difference)
	if len(diffed) == 0 {
		return pickZeroLength(candidates, target), nil
	}

	symbols := make([]uint8, len(diffed))
	for i, x := range diffed {
		symbols[i] = uint8(x)
	}

	lengths := make([]candidateLength, 0, len(candidates))
	for _, name := range candidates {
		bits, err := s.Pool.Compress(name, symbols)
		if err != nil {
			return nil, fmt.Errorf("selector: compressor %q: %w", name, err)
		}
		lengths = append(lengths, candidateLength{name: name, bits: float64(bits)})
	}

	return rankAndTake(lengths, target), nil
}

// differencePrefix takes the first share*|history| elements and applies
// difference passes of adjacent differencing; the resulting preprocessing
// info is discarded since the selector never needs to integrate a forecast.
func differencePrefix(history []float64, share float64, difference int) []float64 {
	n := int(share * float64(len(history)))
	if n > len(history) {
		n = len(history)
	}
	if n < 0 {
		n = 0
	}
	prefix := history[:n]

	info := series.NewPreprocessingInfo[float64]()
	return series.Difference(prefix, difference, &info)
}

// pickZeroLength handles the "empty history after differencing" edge case:
// every compressor maps to zero, so the first target names in lexicographic
// order win the ties.
func pickZeroLength(candidates []string, target int) []string {
	sorted := append([]string(nil), candidates...)
	slices.Sort(sorted)
	if target > len(sorted) {
		target = len(sorted)
	}
	return sorted[:target]
}

// rankAndTake sorts by ascending code length, breaking ties by
// lexicographic name order, and returns the first target names.
func rankAndTake(lengths []candidateLength, target int) []string {
	slices.SortFunc(lengths, func(a, b candidateLength) int {
		if a.bits < b.bits {
			return -1
		}
		if a.bits > b.bits {
			return 1
		}
		if a.name < b.name {
			return -1
		}
		if a.name > b.name {
			return 1
		}
		return 0
	})

	if target > len(lengths) {
		target = len(lengths)
	}
	out := make([]string, target)
	for i := 0; i < target; i++ {
		out[i] = lengths[i].name
	}
	return out
}
