// Package codelength implements the code-length computer of §4.6: for each
// (compressor, continuation) pair it fills a table.ContinuationsDistribution
// with the bit length of history followed by that continuation.
package codelength

import (
	"fmt"
	"slices"

	"github.com/ictforecast/core/compress"
	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/table"
)

// Computer fills continuations-distribution tables from a compressor pool.
type Computer struct {
	pool *compress.Pool
}

// New returns a Computer backed by pool.
func New(pool *compress.Pool) *Computer {
	return &Computer{pool: pool}
}

// ComputeContinuationsDistribution returns a table where T(c, name) is
// pool.CompressContinuations(name, history, continuations)[idx(c)]. When
// continuations is nil, every continuation of the given horizon length over
// alphabet is enumerated via continuation.Generate.
func (cm *Computer) ComputeContinuationsDistribution(history []byte, horizon int, names []string, alphabet int, continuations []continuation.Continuation) (*table.ContinuationsDistribution, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d", errs.ErrInvalidArgument, horizon)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one compressor name is required", errs.ErrInvalidArgument)
	}

	if continuations == nil {
		continuations = make([]continuation.Continuation, 0, continuation.Count(horizon, alphabet))
		for c := range continuation.Generate(horizon, alphabet) {
			continuations = append(continuations, c.Clone())
		}
	}

	dist := table.NewContinuationsDistribution(continuations, append([]string(nil), names...), alphabet)

	for _, name := range names {
		bits, err := cm.pool.CompressContinuations(name, history, continuations)
		if err != nil {
			return nil, fmt.Errorf("codelength: compressor %q: %w", name, err)
		}
		if len(bits) != len(continuations) {
			return nil, fmt.Errorf("%w: compressor %q returned %d lengths for %d continuations", errs.ErrCompressorsError, name, len(bits), len(continuations))
		}
		for i, c := range continuations {
			if err := dist.SetBits(c, name, bits[i]); err != nil {
				return nil, fmt.Errorf("codelength: recording %q bits: %w", name, err)
			}
		}
	}

	return dist, nil
}

// DistinctNames collects the set of distinct compressor names across groups
// (each group string split on "_" upstream), sorted for determinism, as used
// by the forecasting facade to call the computer once per prediction.
func DistinctNames(groups [][]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range groups {
		for _, name := range g {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
