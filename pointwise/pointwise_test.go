package pointwise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ictforecast/core/codelength"
	"github.com/ictforecast/core/compress"
	"github.com/ictforecast/core/predictor"
	"github.com/ictforecast/core/series"
)

func newInfoWithDiffFrame(t *testing.T, seed float64) series.PreprocessingInfo[float64] {
	t.Helper()
	info := series.NewPreprocessingInfo[float64]()
	info.PushDiff([]float64{seed})
	return info
}

func newDiscrete(t *testing.T, alphabet int) *predictor.Discrete {
	t.Helper()
	p := compress.NewPool()
	require.NoError(t, p.Register("zstd", compress.NewZstdCompressor()))
	return &predictor.Discrete{Computer: codelength.New(p), Alphabet: alphabet}
}

func newRealSingleAlphabet(t *testing.T, q int) *predictor.RealSingleAlphabet {
	t.Helper()
	p := compress.NewPool()
	require.NoError(t, p.Register("zstd", compress.NewZstdCompressor()))
	return &predictor.RealSingleAlphabet{Computer: codelength.New(p), Q: q}
}

func TestBasic_ForecastReturnsHorizonLengthSeries(t *testing.T) {
	b := &Basic{Predictor: newDiscrete(t, 2), InverseSample: DiscreteInverse}
	out, err := b.Forecast([]float64{0, 1, 0, 1, 0, 1}, 3, []string{"zstd"})
	require.NoError(t, err)
	require.Contains(t, out, "zstd")
	assert.Len(t, out["zstd"], 3)
	for _, p := range out["zstd"] {
		assert.Len(t, p, 1)
	}
}

func TestIntegratePerDimension_UndoesSingleDifferencingPass(t *testing.T) {
	info := newInfoWithDiffFrame(t, 10)
	points := [][]float64{{1}, {2}, {3}}

	out, err := integratePerDimension(points, 1, info)
	require.NoError(t, err)
	// cumulative sum starting from seed 10: 11, 13, 16
	require.Len(t, out, 3)
	assert.InDelta(t, 11, out[0][0], 1e-9)
	assert.InDelta(t, 13, out[1][0], 1e-9)
	assert.InDelta(t, 16, out[2][0], 1e-9)
}

func TestIntegratePerDimension_EmptyPointsReturnsEmpty(t *testing.T) {
	out, err := integratePerDimension(nil, 0, newInfoWithDiffFrame(t, 0))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSparse_KEqualsOneDelegatesToBasic(t *testing.T) {
	b := &Basic{Predictor: newDiscrete(t, 2), InverseSample: DiscreteInverse}
	s := &Sparse{Inner: b, K: 1}

	history := []float64{0, 1, 0, 1, 0, 1}
	direct, err := b.Forecast(history, 2, []string{"zstd"})
	require.NoError(t, err)
	sparse, err := s.Forecast(history, 2, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, direct, sparse)
}

func TestSparse_FillsFullHorizon(t *testing.T) {
	b := &Basic{Predictor: newDiscrete(t, 2), InverseSample: DiscreteInverse}
	s := &Sparse{Inner: b, K: 2}

	history := []float64{0, 1, 0, 1, 0, 1, 0, 1}
	out, err := s.Forecast(history, 5, []string{"zstd"})
	require.NoError(t, err)
	assert.Len(t, out["zstd"], 5)
}

func TestSparse_RejectsNonPositiveK(t *testing.T) {
	b := &Basic{Predictor: newDiscrete(t, 2), InverseSample: DiscreteInverse}
	s := &Sparse{Inner: b, K: 0}
	_, err := s.Forecast([]float64{0, 1}, 2, []string{"zstd"})
	assert.Error(t, err)
}

func TestSubSeries_TakesEveryKthElement(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	assert.Equal(t, []float64{1, 3, 5}, subSeries(xs, 0, 2))
	assert.Equal(t, []float64{2, 4, 6}, subSeries(xs, 1, 2))
}

func TestBasic_ForecastDesamplesRealValuedPredictions(t *testing.T) {
	b := &Basic{Predictor: newRealSingleAlphabet(t, 4), InverseSample: RealScalarInverse}
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := b.Forecast(history, 2, []string{"zstd"})
	require.NoError(t, err)
	require.Contains(t, out, "zstd")
	assert.Len(t, out["zstd"], 2)
	for _, p := range out["zstd"] {
		require.Len(t, p, 1)
		assert.True(t, p[0] > 0)
	}
}
