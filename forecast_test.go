package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ictforecast/core/adaptor"
)

func newForecaster(t *testing.T) *Forecaster {
	t.Helper()
	f, err := New(0, 255)
	require.NoError(t, err)
	return f
}

func TestDiscrete_ConstantHistoryReturnsHorizonLengthNoNaN(t *testing.T) {
	f := newForecaster(t)
	history := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	out, err := f.Discrete(history, []string{"zlib"}, 2, 0, -1)
	require.NoError(t, err)
	require.Contains(t, out, "zlib")
	assert.Len(t, out["zlib"], 2)
	for _, v := range out["zlib"] {
		assert.False(t, math.IsNaN(v))
	}
}

func TestDiscrete_RejectsHorizonOutOfRange(t *testing.T) {
	f := newForecaster(t)
	_, err := f.Discrete([]float64{0, 1, 0, 1}, []string{"zstd"}, 51, 0, -1)
	assert.Error(t, err)
}

func TestDiscrete_RejectsDifferenceOutOfRange(t *testing.T) {
	f := newForecaster(t)
	_, err := f.Discrete([]float64{0, 1, 0, 1}, []string{"zstd"}, 2, 11, -1)
	assert.Error(t, err)
}

func TestDiscrete_RejectsSparseAboveBound(t *testing.T) {
	f := newForecaster(t)
	_, err := f.Discrete([]float64{0, 1, 0, 1}, []string{"zstd"}, 2, 0, 21)
	assert.Error(t, err)
}

func TestDiscrete_GroupMixtureProducesCombinedColumn(t *testing.T) {
	f := newForecaster(t)
	history := []float64{0, 1, 0, 1, 0, 1, 0, 1, 0, 1}
	out, err := f.Discrete(history, []string{"zstd_s2"}, 2, 0, -1)
	require.NoError(t, err)
	require.Contains(t, out, "zstd_s2")
	assert.Len(t, out["zstd_s2"], 2)
}

func TestReal_RejectsQuantsCountOutOfRange(t *testing.T) {
	f := newForecaster(t)
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	_, err := f.Real(history, []string{"zstd"}, 2, 0, -1, 0)
	assert.Error(t, err)

	_, err = f.Real(history, []string{"zstd"}, 2, 0, -1, 257)
	assert.Error(t, err)
}

func TestReal_ReturnsHorizonLengthSeries(t *testing.T) {
	f := newForecaster(t)
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out, err := f.Real(history, []string{"zstd"}, 3, 0, -1, 4)
	require.NoError(t, err)
	require.Contains(t, out, "zstd")
	assert.Len(t, out["zstd"], 3)
}

func TestMultiAlphabet_RejectsNonPowerOfTwoQuantsCount(t *testing.T) {
	f := newForecaster(t)
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	_, err := f.MultiAlphabet(history, []string{"zstd"}, 2, 0, -1, 3)
	assert.Error(t, err)
}

func TestMultiAlphabet_ReturnsHorizonLengthSeries(t *testing.T) {
	f := newForecaster(t)
	history := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out, err := f.MultiAlphabet(history, []string{"zstd"}, 2, 0, -1, 4)
	require.NoError(t, err)
	require.Contains(t, out, "zstd")
	assert.Len(t, out["zstd"], 2)
}

func TestMultiAlphabetVec_ShortVectorSeriesReturnsExpectedShape(t *testing.T) {
	f := newForecaster(t)
	channels := make([][]float64, 2)
	for c := range channels {
		series := make([]float64, 19)
		for i := range series {
			series[i] = float64(i + c)
		}
		channels[c] = series
	}

	out, err := f.MultiAlphabetVec(channels, []string{"zlib"}, 2, 0, -1, 8)
	require.NoError(t, err)
	require.Contains(t, out, "zlib")
	assert.Len(t, out["zlib"], 2)     // two channels
	assert.Len(t, out["zlib"][0], 2)  // horizon 2 per channel
}

func TestMultiAlphabetVec_RejectsUnequalChannelLengths(t *testing.T) {
	f := newForecaster(t)
	channels := [][]float64{{1, 2, 3}, {1, 2}}
	_, err := f.MultiAlphabetVec(channels, []string{"zstd"}, 1, 0, -1, 2)
	assert.Error(t, err)
}

func TestDiscreteVec_ReturnsExpectedShape(t *testing.T) {
	f := newForecaster(t)
	channels := [][]float64{
		{0, 1, 0, 1, 0, 1, 0, 1},
		{1, 0, 1, 0, 1, 0, 1, 0},
	}
	out, err := f.DiscreteVec(channels, []string{"zstd"}, 2, 0, -1)
	require.NoError(t, err)
	require.Contains(t, out, "zstd")
	assert.Len(t, out["zstd"], 2)
	assert.Len(t, out["zstd"][0], 2)
}

func TestAutomaton_Alone(t *testing.T) {
	f := newForecaster(t)
	history := make([]float64, 588)
	for i := range history {
		history[i] = float64(i % 2)
	}
	out, err := f.Discrete(history, []string{"automation"}, 4, 0, 8)
	require.NoError(t, err)
	require.Contains(t, out, "automation")
	assert.Len(t, out["automation"], 4)
}

type alwaysZeroPredictor struct{}

func (alwaysZeroPredictor) GiveNextPrediction(historyPrefix []uint8) (uint8, adaptor.Confidence) {
	return 0, adaptor.Confident
}

func TestRegisterNonCompressionAlgorithm_UsableInForecast(t *testing.T) {
	f := newForecaster(t)
	require.NoError(t, f.RegisterNonCompressionAlgorithm("always-zero", alwaysZeroPredictor{}))

	history := []float64{0, 0, 0, 0, 0, 0, 0, 0}
	out, err := f.Discrete(history, []string{"always-zero"}, 2, 0, -1)
	require.NoError(t, err)
	assert.Len(t, out["always-zero"], 2)
}

func TestSelectBestCompressors_ReturnsRequestedCount(t *testing.T) {
	f := newForecaster(t)
	history := make([]float64, 50)
	for i := range history {
		history[i] = float64(i % 5)
	}
	out, err := f.SelectBestCompressors(history, []string{"zstd", "s2", "zlib"}, 0, []int{4, 8}, 1.0, 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
