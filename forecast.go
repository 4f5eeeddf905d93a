// Package forecast is the root forecasting facade (C13): it wires the
// code-length computer, distribution predictors, pointwise predictor, and
// compressor selector behind five entry points — Real, MultiAlphabet,
// MultiAlphabetVec, Discrete, DiscreteVec — plus compressor registration and
// selection, the way the teacher's mebo.go wraps blob's lower-level encoders
// behind a handful of top-level convenience constructors.
package forecast

import (
	"fmt"
	"strings"

	"github.com/ictforecast/core/adaptor"
	"github.com/ictforecast/core/codelength"
	"github.com/ictforecast/core/compress"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/pointwise"
	"github.com/ictforecast/core/predictor"
	"github.com/ictforecast/core/sample"
	"github.com/ictforecast/core/selector"
	"github.com/ictforecast/core/series"
	"github.com/ictforecast/core/table"
)

// Forecaster owns the compressor pool and code-length computer shared by
// every forecasting call on a series. A Forecaster's Pool is not safe for
// concurrent predictions (§5); callers predicting concurrently construct one
// Forecaster per goroutine.
type Forecaster struct {
	pool     *compress.Pool
	computer *codelength.Computer
}

// New returns a Forecaster backed by the standard compressor pool (zstd,
// zlib, lz4, s2, bzip2, automation, plus the unimplemented research slots),
// configured for the symbol range [minSym, maxSym].
func New(minSym, maxSym int) (*Forecaster, error) {
	pool, err := compress.NewStandardPool(minSym, maxSym)
	if err != nil {
		return nil, err
	}
	return &Forecaster{pool: pool, computer: codelength.New(pool)}, nil
}

// RegisterNonCompressionAlgorithm adopts a user-supplied stream predictor
// under name, wraps it with the Krichevsky-mixture adaptor (§4.4), and adds
// it to the pool for subsequent forecasting calls.
func (f *Forecaster) RegisterNonCompressionAlgorithm(name string, alg adaptor.StreamPredictor) error {
	return f.pool.Register(name, adaptor.New(alg))
}

// SelectBestCompressors ranks candidates on a share-sized prefix of series
// and returns the target best names (§4.10).
func (f *Forecaster) SelectBestCompressors(hist []float64, candidates []string, difference int, quants []int, share float64, target int) ([]string, error) {
	sel := &selector.Selector{Pool: f.pool}
	return sel.SelectReal(hist, share, difference, quants, candidates, target)
}

// validateCommon checks the bounds shared by every entry point (§4.9).
func validateCommon(horizon, difference, sparse int) error {
	if horizon < 1 || horizon > 50 {
		return fmt.Errorf("%w: horizon=%d must be in [1,50]", errs.ErrInvalidArgument, horizon)
	}
	if difference < 0 || difference > 10 {
		return fmt.Errorf("%w: difference=%d must be in [0,10]", errs.ErrInvalidArgument, difference)
	}
	if sparse > 20 {
		return fmt.Errorf("%w: sparse=%d must be <= 20", errs.ErrInvalidArgument, sparse)
	}
	return nil
}

func validateQuantsCount(q int) error {
	if q < 1 || q > 256 {
		return fmt.Errorf("%w: quants_count=%d must be in [1,256]", errs.ErrInvalidArgument, q)
	}
	return nil
}

func isPowerOfTwo(n int) bool { return n >= 2 && n&(n-1) == 0 }

func validateMultiAlphabetQuants(q int) error {
	if !isPowerOfTwo(q) || q > 256 {
		return fmt.Errorf("%w: max_quants_count=%d must be a power of two in [2,256]", errs.ErrInvalidArgument, q)
	}
	return nil
}

// parseGroups splits every group string on "_" into its member compressor
// names (§4.9).
func parseGroups(groups []string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = strings.Split(g, "_")
	}
	return out
}

func validateEqualLengths(channels [][]float64) error {
	if len(channels) == 0 {
		return nil
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w", errs.ErrDifferentHistoryLengths)
		}
	}
	return nil
}

// applyGroupsAndNormalize runs §4.6 rules 3-4 directly on dist, used by the
// vector entry points which cannot go through predictor.CompressionBasedPredictor
// (that wrapper's Predict is typed to scalar history).
func applyGroupsAndNormalize(dist *table.ContinuationsDistribution, groupNames [][]string) error {
	for _, group := range groupNames {
		if len(group) < 2 {
			continue
		}
		name := strings.Join(group, "_")
		if err := table.GroupMixture(dist, name, group, table.UniformWeights(len(group))); err != nil {
			return err
		}
	}
	table.Normalize(dist)
	return nil
}

// scalarForecaster is satisfied by both pointwise.Basic and pointwise.Sparse.
type scalarForecaster interface {
	Forecast(history []float64, horizon int, names []string) (map[string][][]float64, error)
}

// runScalar wires a DistributionPredictor through CompressionBasedPredictor,
// Basic (or Sparse), and filters the result down to the requested groups,
// shared by Real, MultiAlphabet, and Discrete.
func (f *Forecaster) runScalar(inner predictor.DistributionPredictor, inverse func(int, series.PreprocessingInfo[float64]) []float64, history []float64, groups []string, horizon, difference, sparse int) (map[string][]float64, error) {
	if err := validateCommon(horizon, difference, sparse); err != nil {
		return nil, err
	}

	groupNames := parseGroups(groups)
	names := codelength.DistinctNames(groupNames)

	wrapped := &predictor.CompressionBasedPredictor{Inner: inner, Difference: difference, Groups: groupNames}
	basic := &pointwise.Basic{Predictor: wrapped, InverseSample: inverse}

	var fc scalarForecaster = basic
	if sparse > 0 {
		fc = &pointwise.Sparse{Inner: basic, K: sparse}
	}

	out, err := fc.Forecast(history, horizon, names)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]float64, len(groups))
	for _, g := range groups {
		pts, ok := out[g]
		if !ok {
			return nil, fmt.Errorf("%w: group %q produced no forecast column", errs.ErrRuntime, g)
		}
		row := make([]float64, len(pts))
		for i, p := range pts {
			if len(p) > 0 {
				row[i] = p[0]
			}
		}
		result[g] = row
	}
	return result, nil
}

// Real runs the real-valued single-alphabet entry point (forecast_real):
// history is sampled once at quantsCount partition cardinality.
func (f *Forecaster) Real(history []float64, groups []string, horizon, difference, sparse, quantsCount int) (map[string][]float64, error) {
	if err := validateQuantsCount(quantsCount); err != nil {
		return nil, err
	}
	inner := &predictor.RealSingleAlphabet{Computer: f.computer, Q: quantsCount}
	return f.runScalar(inner, pointwise.RealScalarInverse, history, groups, horizon, difference, sparse)
}

// MultiAlphabet runs the real-valued multi-alphabet entry point
// (forecast_multialphabet): history is sampled at every power-of-two
// partition cardinality up to maxQuantsCount and merged.
func (f *Forecaster) MultiAlphabet(history []float64, groups []string, horizon, difference, sparse, maxQuantsCount int) (map[string][]float64, error) {
	if err := validateMultiAlphabetQuants(maxQuantsCount); err != nil {
		return nil, err
	}
	inner := &predictor.RealMultiAlphabet{Computer: f.computer, QMax: maxQuantsCount}
	return f.runScalar(inner, pointwise.RealScalarInverse, history, groups, horizon, difference, sparse)
}

// Discrete runs the discrete entry point (forecast_discrete): history is
// already a symbol stream, no sampling step.
func (f *Forecaster) Discrete(history []float64, groups []string, horizon, difference, sparse int) (map[string][]float64, error) {
	inner := &predictor.Discrete{Computer: f.computer, Alphabet: discreteAlphabet(history)}
	return f.runScalar(inner, pointwise.DiscreteInverse, history, groups, horizon, difference, sparse)
}

// discreteAlphabet infers a symbol alphabet from the observed range of an
// already-discrete series (values are expected to be small non-negative
// integers cast from byte symbols).
func discreteAlphabet(xs []float64) int {
	max := 0
	for _, x := range xs {
		if int(x) > max {
			max = int(x)
		}
	}
	alphabet := max + 1
	if alphabet < 2 {
		alphabet = 2
	}
	if alphabet > 256 {
		alphabet = 256
	}
	return alphabet
}

// transpose swaps rows and columns of a rectangular matrix: channel-major
// series (one []float64 per channel) become step-major point tuples (one
// []float64 per step), and vice versa, following the teacher's columnar
// pivot discipline (encoding/columnar.go) at the facade boundary.
func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	rows := len(m)
	cols := len(m[0])
	out := make([][]float64, cols)
	for c := range out {
		out[c] = make([]float64, rows)
	}
	for r, row := range m {
		for c := 0; c < cols && c < len(row); c++ {
			out[c][r] = row[c]
		}
	}
	return out
}

func subSeriesFloat(xs []float64, offset, k int) []float64 {
	var out []float64
	for i := offset; i < len(xs); i += k {
		out = append(out, xs[i])
	}
	return out
}

func subChannels(channels [][]float64, offset, k int) [][]float64 {
	out := make([][]float64, len(channels))
	for c, ch := range channels {
		out[c] = subSeriesFloat(ch, offset, k)
	}
	return out
}

func differenceChannels(channels [][]float64, order int) ([][]float64, []series.PreprocessingInfo[[]float64]) {
	diffed := make([][]float64, len(channels))
	infos := make([]series.PreprocessingInfo[[]float64], len(channels))
	for c, ch := range channels {
		info := series.NewPreprocessingInfo[[]float64]()
		diffed[c] = series.Difference(ch, order, &info)
		infos[c] = info
	}
	return diffed, infos
}

// integrateVectorPerDimension undoes order passes of adjacent differencing
// on each coordinate of points independently, using each channel's own
// diff-stack, mirroring pointwise.integratePerDimension generalized to a
// per-channel (rather than shared) differencing history.
func integrateVectorPerDimension(points [][]float64, order int, infos []series.PreprocessingInfo[[]float64]) ([][]float64, error) {
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
		var info series.PreprocessingInfo[[]float64]
		if c < len(infos) {
			info = infos[c].Clone()
		} else {
			info = series.NewPreprocessingInfo[[]float64]()
		}
		lifted := series.Integrate(col, order, &info)
		for i, v := range lifted {
			out[i][c] = v
		}
	}
	return out, nil
}

func vectorLevelN(info series.PreprocessingInfo[[]float64]) int {
	if len(info.DesampleTable) == 0 {
		return 0
	}
	return len(info.DesampleTable[0])
}

// forecastVectorDense runs one dense (non-sparse) real-valued vector
// forecast: difference each channel independently, pivot to column-major
// points, predict, mix/normalize groups, marginalize+mean per step, then
// integrate each coordinate back through its own channel's diff-stack.
// Returns a step-major map keyed by every distinct compressor/group name.
func (f *Forecaster) forecastVectorDense(channels [][]float64, horizon int, names []string, groupNames [][]string, maxQuantsCount, difference int) (map[string][][]float64, error) {
	diffed, infos := differenceChannels(channels, difference)
	points := transpose(diffed)

	inner := &predictor.VectorRealMultiAlphabet{Computer: f.computer, NMax: maxQuantsCount}
	dist, sampleInfo, err := inner.Predict(points, horizon, names)
	if err != nil {
		return nil, err
	}
	if err := applyGroupsAndNormalize(dist, groupNames); err != nil {
		return nil, err
	}

	n := vectorLevelN(sampleInfo)
	inverseVec := func(symbol int) []float64 {
		out, err := sample.InverseRealVector([]uint8{uint8(symbol)}, n, sampleInfo)
		if err != nil || len(out) == 0 {
			return make([]float64, len(channels))
		}
		return out[0]
	}

	perStep := make(map[string][][]float64, dist.NumCols())
	for j := 0; j < horizon; j++ {
		marg, err := table.MarginalizePerStep(dist, j)
		if err != nil {
			return nil, err
		}
		means := table.MeanPerStep(marg, inverseVec)
		for _, name := range dist.Cols() {
			perStep[name] = append(perStep[name], means[name].Point)
		}
	}

	out := make(map[string][][]float64, len(perStep))
	for name, pts := range perStep {
		lifted, err := integrateVectorPerDimension(pts, difference, infos)
		if err != nil {
			return nil, err
		}
		out[name] = lifted
	}
	return out, nil
}

// discreteVectorAlphabet picks a uniform per-channel digit count covering the
// observed range of every channel, the vector analogue of discreteAlphabet.
func discreteVectorAlphabet(channels [][]float64) int {
	max := 0
	for _, ch := range channels {
		for _, x := range ch {
			if int(x) > max {
				max = int(x)
			}
		}
	}
	n := max + 1
	if n < 2 {
		n = 2
	}
	return n
}

func ipow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// foldDiscreteVector folds each step's per-channel digits into one symbol
// via sample.ToDec, the discrete analogue of sample.RealVector's folding.
func foldDiscreteVector(channels [][]float64, n int) ([]float64, error) {
	if len(channels) == 0 {
		return nil, nil
	}
	length := len(channels[0])
	folded := make([]float64, length)
	digits := make([]int, len(channels))
	for t := 0; t < length; t++ {
		for c, ch := range channels {
			digits[c] = int(ch[t])
		}
		value, err := sample.ToDec(digits, n)
		if err != nil {
			return nil, err
		}
		folded[t] = float64(value)
	}
	return folded, nil
}

// forecastDiscreteVectorDense is DiscreteVec's dense (non-sparse) pass:
// difference each channel, fold into one symbol stream, predict, mix/
// normalize, marginalize+mean per step, then integrate per channel.
func (f *Forecaster) forecastDiscreteVectorDense(channels [][]float64, horizon int, names []string, groupNames [][]string, difference int) (map[string][][]float64, error) {
	diffed, infos := differenceChannels(channels, difference)
	n := discreteVectorAlphabet(diffed)
	alphabet := ipow(n, len(diffed))
	if alphabet > 256 {
		return nil, fmt.Errorf("%w: intervals=%d", errs.ErrIntervalsCount, alphabet)
	}
	folded, err := foldDiscreteVector(diffed, n)
	if err != nil {
		return nil, err
	}

	inner := &predictor.VectorDiscrete{Computer: f.computer, Alphabet: alphabet}
	dist, _, err := inner.Predict(folded, horizon, names)
	if err != nil {
		return nil, err
	}
	if err := applyGroupsAndNormalize(dist, groupNames); err != nil {
		return nil, err
	}

	d := len(channels)
	inverseVec := func(symbol int) []float64 {
		digits, err := sample.FromDec(symbol, n, d)
		if err != nil {
			return make([]float64, d)
		}
		out := make([]float64, d)
		for i, dig := range digits {
			out[i] = float64(dig)
		}
		return out
	}

	perStep := make(map[string][][]float64, dist.NumCols())
	for j := 0; j < horizon; j++ {
		marg, err := table.MarginalizePerStep(dist, j)
		if err != nil {
			return nil, err
		}
		means := table.MeanPerStep(marg, inverseVec)
		for _, name := range dist.Cols() {
			perStep[name] = append(perStep[name], means[name].Point)
		}
	}

	out := make(map[string][][]float64, len(perStep))
	for name, pts := range perStep {
		lifted, err := integrateVectorPerDimension(pts, difference, infos)
		if err != nil {
			return nil, err
		}
		out[name] = lifted
	}
	return out, nil
}

// runVectorWithSparse applies the Sparse(k) interleave scheme (§4.8) on top
// of a dense vector forecaster: dense supplies the first ceil(horizon/k)
// steps, k interleaved channel sub-series fill the rest, exactly mirroring
// pointwise.Sparse's scalar scheme but over channel-major series.
func runVectorWithSparse(channels [][]float64, groups []string, horizon, sparse int, dense func(chs [][]float64, h int) (map[string][][]float64, error)) (map[string][][]float64, error) {
	if sparse <= 0 {
		full, err := dense(channels, horizon)
		if err != nil {
			return nil, err
		}
		return filterGroups(full, groups)
	}

	subHorizon := (horizon + sparse - 1) / sparse
	full, err := dense(channels, subHorizon)
	if err != nil {
		return nil, err
	}

	subForecasts := make([]map[string][][]float64, sparse)
	for offset := 0; offset < sparse; offset++ {
		f2, err := dense(subChannels(channels, offset, sparse), subHorizon)
		if err != nil {
			return nil, err
		}
		subForecasts[offset] = f2
	}

	merged := make(map[string][][]float64, len(groups))
	for _, g := range groups {
		denseSteps, ok := full[g]
		if !ok {
			return nil, fmt.Errorf("%w: group %q produced no forecast column", errs.ErrRuntime, g)
		}
		steps := make([][]float64, 0, horizon)
		for i := 0; i < subHorizon && i < horizon; i++ {
			steps = append(steps, denseSteps[i])
		}
		for i := 0; len(steps) < horizon; i++ {
			off := i % sparse
			st := i / sparse
			sf := subForecasts[off][g]
			if st >= len(sf) {
				break
			}
			steps = append(steps, sf[st])
		}
		merged[g] = steps
	}
	return merged, nil
}

func filterGroups(full map[string][][]float64, groups []string) (map[string][][]float64, error) {
	out := make(map[string][][]float64, len(groups))
	for _, g := range groups {
		pts, ok := full[g]
		if !ok {
			return nil, fmt.Errorf("%w: group %q produced no forecast column", errs.ErrRuntime, g)
		}
		out[g] = pts
	}
	return out, nil
}

// MultiAlphabetVec runs the real-valued multi-alphabet vector entry point
// (forecast_multialphabet_vec): channels holds one []float64 per original
// series, all equal length, pivoted internally to column-major point
// tuples and pivoted back to channel-major on return.
func (f *Forecaster) MultiAlphabetVec(channels [][]float64, groups []string, horizon, difference, sparse, maxQuantsCount int) (map[string][][]float64, error) {
	if err := validateCommon(horizon, difference, sparse); err != nil {
		return nil, err
	}
	if err := validateMultiAlphabetQuants(maxQuantsCount); err != nil {
		return nil, err
	}
	if err := validateEqualLengths(channels); err != nil {
		return nil, err
	}

	groupNames := parseGroups(groups)
	names := codelength.DistinctNames(groupNames)

	dense := func(chs [][]float64, h int) (map[string][][]float64, error) {
		return f.forecastVectorDense(chs, h, names, groupNames, maxQuantsCount, difference)
	}

	merged, err := runVectorWithSparse(channels, groups, horizon, sparse, dense)
	if err != nil {
		return nil, err
	}

	out := make(map[string][][]float64, len(merged))
	for g, pts := range merged {
		out[g] = transpose(pts)
	}
	return out, nil
}

// DiscreteVec runs the discrete vector entry point (forecast_discrete_vec):
// channels holds one already-discrete []float64 per original series, all
// equal length.
func (f *Forecaster) DiscreteVec(channels [][]float64, groups []string, horizon, difference, sparse int) (map[string][][]float64, error) {
	if err := validateCommon(horizon, difference, sparse); err != nil {
		return nil, err
	}
	if err := validateEqualLengths(channels); err != nil {
		return nil, err
	}

	groupNames := parseGroups(groups)
	names := codelength.DistinctNames(groupNames)

	dense := func(chs [][]float64, h int) (map[string][][]float64, error) {
		return f.forecastDiscreteVectorDense(chs, h, names, groupNames, difference)
	}

	merged, err := runVectorWithSparse(channels, groups, horizon, sparse, dense)
	if err != nil {
		return nil, err
	}

	out := make(map[string][][]float64, len(merged))
	for g, pts := range merged {
		out[g] = transpose(pts)
	}
	return out, nil
}
