// Package predictor implements §4.7's three distribution-predictor
// strategies (Discrete, RealSingleAlphabet, RealMultiAlphabet) and the
// CompressionBasedPredictor wrapper shared by all of them.
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

// DistributionPredictor is the contract shared by the three scalar
// strategies of §4.7: given a (possibly pre-differenced) history and a list
// of compressor names, return the continuations-probability table together
// with the preprocessing info needed to invert the sampling step later.
// The vector analogues share the same shift/exponentiate/merge helpers but
// do not implement this interface: VectorRealSingleAlphabet and
// VectorRealMultiAlphabet take [][]float64 points, and VectorDiscrete takes
// the already-folded []float64 symbol series with its own alphabet.
type DistributionPredictor interface {
	Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[float64], error)
}

// shiftToZero subtracts the table's global minimum from every cell, the
// numerical-stability half of §4.6 rule 1.
func shiftToZero(d *table.ContinuationsDistribution) {
	min := table.GlobalMin(d)
	table.Shift(d, hpreal.Zero().Sub(min))
}

// Discrete samples by integer normalization (subtract the observed minimum,
// no bucketing), computes the code-length table at the already-known
// alphabet, shifts by the table's global minimum and exponentiates. No
// partition mixture.
type Discrete struct {
	Computer *codelength.Computer
	Alphabet int
}

// Predict implements DistributionPredictor.
func (p *Discrete) Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[float64], error) {
	info := series.NewPreprocessingInfo[float64]()
	info.Alphabet = p.Alphabet

	// §4.2: subtract the observed minimum so the smallest symbol becomes 0;
	// a desample table records the shift so the forecast can be lifted back.
	min := 0.0
	for i, x := range history {
		if i == 0 || x < min {
			min = x
		}
	}

	symbols := make([]uint8, len(history))
	for i, x := range history {
		symbols[i] = uint8(x - min)
	}

	if min != 0 {
		repr := make([]float64, p.Alphabet)
		for k := 0; k < p.Alphabet; k++ {
			repr[k] = min + float64(k)
		}
		info.Sampled = true
		info.DesampleTable = [][]float64{repr}
	}

	dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, p.Alphabet, nil)
	if err != nil {
		return nil, info, err
	}
	shiftToZero(dist)
	table.Exponentiate(dist)
	return dist, info, nil
}

// RealSingleAlphabet samples with a single fixed partition cardinality Q,
// then follows the same shift+exponentiate sequel as Discrete.
type RealSingleAlphabet struct {
	Computer *codelength.Computer
	Q        int
}

// Predict implements DistributionPredictor.
func (p *RealSingleAlphabet) Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[float64], error) {
	symbols, info, err := sample.RealScalar(history, p.Q)
	if err != nil {
		return nil, info, err
	}

	dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, p.Q, nil)
	if err != nil {
		return nil, info, err
	}
	shiftToZero(dist)
	table.Exponentiate(dist)
	return dist, info, nil
}

// RealMultiAlphabet samples and computes a table at every power-of-two
// partition cardinality from 2 up to QMax, levels the message-length bias
// per table, subtracts the global minimum across all tables, exponentiates,
// then merges with countable partition weights (§4.6 rule 5).
type RealMultiAlphabet struct {
	Computer *codelength.Computer
	QMax     int
}

func powerOfTwoLevels(qmax int) []int {
	var levels []int
	for q := 2; q <= qmax; q *= 2 {
		levels = append(levels, q)
	}
	return levels
}

// mergeLevels runs the shared shift/exponentiate/merge sequence of §4.7's
// multi-alphabet strategy over tables already computed at each level.
func mergeLevels(tables []*table.ContinuationsDistribution, levels []int) (*table.ContinuationsDistribution, error) {
	min := table.GlobalMin(tables[0])
	for _, t := range tables[1:] {
		if m := table.GlobalMin(t); m.Less(min) {
			min = m
		}
	}
	neg := hpreal.Zero().Sub(min)
	for _, t := range tables {
		table.Shift(t, neg)
		table.Exponentiate(t)
	}
	return table.Merge(tables, levels)
}

// Predict implements DistributionPredictor.
func (p *RealMultiAlphabet) Predict(history []float64, horizon int, names []string) (*table.ContinuationsDistribution, series.PreprocessingInfo[float64], error) {
	levels := powerOfTwoLevels(p.QMax)
	if len(levels) == 0 {
		return nil, series.NewPreprocessingInfo[float64](), fmt.Errorf("%w: QMax=%d yields no power-of-two partition", errs.ErrInvalidArgument, p.QMax)
	}

	tables := make([]*table.ContinuationsDistribution, len(levels))
	var finestInfo series.PreprocessingInfo[float64]
	messageLength := float64(len(history) + horizon)

	for i, q := range levels {
		symbols, info, err := sample.RealScalar(history, q)
		if err != nil {
			return nil, info, err
		}
		dist, err := p.Computer.ComputeContinuationsDistribution(symbols, horizon, names, q, nil)
		if err != nil {
			return nil, info, err
		}
		bias := hpreal.FromFloat64(float64(len(levels)-i-1) * messageLength)
		table.Shift(dist, bias)
		tables[i] = dist
		if i == len(levels)-1 {
			finestInfo = info
		}
	}

	merged, err := mergeLevels(tables, levels)
	if err != nil {
		return nil, finestInfo, err
	}
	return merged, finestInfo, nil
}
