package predictor

import (
	"fmt"

	"github.com/ictforecast/core/codelength"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/internal/hpreal"
	"github.com/ictforecast/core/sample"
	"github.com/ictforecast/core/series"
	"github.com/ictforecast/core/table"
)

// VectorDiscrete is the vector analogue of Discrete: the history is already
// a folded symbol stream (built by sample.RealVector or equivalent upstream
// folding), so it samples by identity cast.
type VectorDiscrete struct {
	Computer *codelength.Computer
	Alphabet int
}

// Predict takes a history that is already a folded symbol stream (one
// float64-cast symbol per timestep) and follows the same shift+exponentiate
// sequel as Discrete.
func (p *VectorDiscrete) Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[[]float64], error) {
	info := series.NewPreprocessingInfo[[]float64]()
	info.Alphabet = p.Alphabet

	symbols := make([]uint8, len(history))
	for i, x := range history {
		symbols[i] = uint8(x)
	}

	dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, p.Alphabet, nil)
	if err != nil {
		return nil, info, err
	}
	shiftToZero(dist)
	table.Exponentiate(dist)
	return dist, info, nil
}

// VectorRealSingleAlphabet folds a d-dimensional real series into one
// symbol stream of n^d symbols (sample.RealVector) before following the
// same shift+exponentiate sequel as RealSingleAlphabet.
type VectorRealSingleAlphabet struct {
	Computer *codelength.Computer
	N        int
}

// Predict takes points in row-major order (one coordinate vector per
// timestep, already pivoted by the facade) and folds+buckets them via
// sample.RealVector before the shift+exponentiate sequel.
func (p *VectorRealSingleAlphabet) Predict(points [][]float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[[]float64], error) {
	symbols, info, err := sample.RealVector(points, p.N)
	if err != nil {
		return nil, info, err
	}

	alphabet := info.Alphabet
	dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, alphabet, nil)
	if err != nil {
		return nil, info, err
	}
	shiftToZero(dist)
	table.Exponentiate(dist)
	return dist, info, nil
}

// VectorRealMultiAlphabet is RealMultiAlphabet's vector analogue: for every
// power-of-two per-coordinate interval count n = 2, 4, ..., NMax it folds
// the vector series with sample.RealVector, levels the message-length bias,
// then merges with countable partition weights exactly as the scalar case.
type VectorRealMultiAlphabet struct {
	Computer *codelength.Computer
	NMax     int
}

// Predict implements the same level/merge sequence as RealMultiAlphabet.Predict.
func (p *VectorRealMultiAlphabet) Predict(points [][]float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[[]float64], error) {
	levels := powerOfTwoLevels(p.NMax)
	if len(levels) == 0 {
		return nil, series.NewPreprocessingInfo[[]float64](), fmt.Errorf("%w: NMax=%d yields no power-of-two partition", errs.ErrInvalidArgument, p.NMax)
	}

	tables := make([]*table.ContinuationsDistribution, len(levels))
	alphabets := make([]int, len(levels))
	var finestInfo series.PreprocessingInfo[[]float64]
	messageLength := float64(len(points) + horizon)

	for i, n := range levels {
		symbols, info, err := sample.RealVector(points, n)
		if err != nil {
			return nil, info, err
		}
		dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, info.Alphabet, nil)
		if err != nil {
			return nil, info, err
		}
		bias := hpreal.FromFloat64(float64(len(levels)-i-1) * messageLength)
		table.Shift(dist, bias)
		tables[i] = dist
		alphabets[i] = info.Alphabet
		if i == len(levels)-1 {
			finestInfo = info
		}
	}

	merged, err := mergeLevels(tables, alphabets)
	if err != nil {
		return nil, finestInfo, err
	}
	return merged, finestInfo, nil
}
