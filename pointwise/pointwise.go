// Package pointwise implements §4.8's pointwise predictor: marginalize per
// step, mean per step, integrate — plus the Sparse(k) decorator that keeps
// the dense forecast for the first ⌈h/k⌉ steps and fills the rest from k
// interleaved sub-series.
package pointwise

import (
	"fmt"

	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/predictor"
	"github.com/ictforecast/core/sample"
	"github.com/ictforecast/core/series"
	"github.com/ictforecast/core/table"
)

// DiscreteInverse is the InverseSample for predictor.Discrete: an identity
// cast when the history's observed minimum was already 0, or a lookup
// through info's desample table when predictor.Discrete shifted symbols to
// subtract a nonzero minimum (§4.2).
func DiscreteInverse(symbol int, info series.PreprocessingInfo[float64]) []float64 {
	if info.Sampled && len(info.DesampleTable) > 0 {
		repr := info.DesampleTable[0]
		if symbol >= 0 && symbol < len(repr) {
			return []float64{repr[symbol]}
		}
	}
	return []float64{float64(symbol)}
}

// RealScalarInverse is the InverseSample for RealSingleAlphabet and
// RealMultiAlphabet: it desamples through info's desample table via
// sample.InverseRealScalar.
func RealScalarInverse(symbol int, info series.PreprocessingInfo[float64]) []float64 {
	return sample.InverseRealScalar([]uint8{uint8(symbol)}, info)
}

// Basic is the basic pointwise predictor of §4.8: marginalize per step,
// mean per step, then integrate back through the differencing passes
// recorded in the preprocessing info.
type Basic struct {
	Predictor predictor.DistributionPredictor
	// InverseSample maps a bucket symbol back to a point in the original
	// scale. It takes the preprocessing info returned by Predictor.Predict
	// since real-valued strategies (sample.InverseRealScalar et al.) need
	// the desample table built during sampling, not just the symbol.
	InverseSample func(symbol int, info series.PreprocessingInfo[float64]) []float64
}

// Forecast returns, for each compressor/group name, the horizon-length
// sequence of forecast points in the original (undifferenced, desampled) scale.
func (b *Basic) Forecast(history []float64, horizon int, names []string) (map[string][][]float64, error) {
	dist, info, err := b.Predictor.Predict(history, horizon, names)
	if err != nil {
		return nil, err
	}
	return integrateDistribution(dist, horizon, info, b.InverseSample)
}

func integrateDistribution(dist *table.ContinuationsDistribution, horizon int, info series.PreprocessingInfo[float64], inverseSample func(int, series.PreprocessingInfo[float64]) []float64) (map[string][][]float64, error) {
	boundInverse := func(symbol int) []float64 { return inverseSample(symbol, info) }
	perStep := make(map[string][][]float64, dist.NumCols())
	for j := 0; j < horizon; j++ {
		marg, err := table.MarginalizePerStep(dist, j)
		if err != nil {
			return nil, err
		}
		means := table.MeanPerStep(marg, boundInverse)
		for _, name := range dist.Cols() {
			perStep[name] = append(perStep[name], means[name].Point)
		}
	}

	order := len(info.DiffStack)
	out := make(map[string][][]float64, len(perStep))
	for name, points := range perStep {
		lifted, err := integratePerDimension(points, order, info)
		if err != nil {
			return nil, err
		}
		out[name] = lifted
	}
	return out, nil
}

// integratePerDimension undoes order passes of adjacent differencing on
// each coordinate of points independently, since series.Integrate operates
// on a single scalar sequence.
func integratePerDimension(points [][]float64, order int, info series.PreprocessingInfo[float64]) ([][]float64, error) {
	if len(points) == 0 {
		return points, nil
	}
	d := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, d)
	}

	for c := 0; c < d; c++ {
		col := make([]float64, len(points))
		for i, p := range points {
			if len(p) <= c {
				return nil, fmt.Errorf("%w: inconsistent forecast point dimension at step %d", errs.ErrRuntime, i)
			}
			col[i] = p[c]
		}
		clone := info.Clone()
		lifted := series.Integrate(col, order, &clone)
		for i, v := range lifted {
			out[i][c] = v
		}
	}
	return out, nil
}
