package sample

import (
	"testing"

	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealScalar_EmptyInput(t *testing.T) {
	symbols, info, err := RealScalar(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, symbols)
	assert.False(t, info.Sampled)
}

func TestRealScalar_TooShort(t *testing.T) {
	_, _, err := RealScalar([]float64{1}, 4)
	assert.ErrorIs(t, err, errs.ErrSeriesTooShort)
}

func TestRealScalar_TooManyIntervals(t *testing.T) {
	_, _, err := RealScalar([]float64{1, 2, 3}, 300)
	assert.ErrorIs(t, err, errs.ErrIntervalsCount)
}

func TestRealScalar_BucketsWithinRange(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	symbols, info, err := RealScalar(xs, 5)
	require.NoError(t, err)
	require.Len(t, symbols, len(xs))
	for _, s := range symbols {
		assert.Less(t, int(s), 5)
	}
	assert.True(t, info.Sampled)
	assert.Equal(t, 5, info.Alphabet)
}

func TestRealScalar_WideningExtendsBucketsBeyondHistory(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	_, info, err := RealScalar(xs, 5)
	require.NoError(t, err)

	repr := info.DesampleTable[0]
	width := repr[1] - repr[0]
	assert.Less(t, repr[0]-width/2, 0.0, "lowest bucket's lower edge should fall below the observed minimum")
	assert.Greater(t, repr[len(repr)-1]+width/2, 10.0, "highest bucket's upper edge should exceed the observed maximum")
}

func TestInverseRealScalar_NonSampledIsIdentityCast(t *testing.T) {
	var info series.PreprocessingInfo[float64]
	symbols := []uint8{0, 1, 2}

	out := InverseRealScalar(symbols, info)
	assert.Equal(t, []float64{0, 1, 2}, out)
}

func TestInverseRealScalar_RoundTripsThroughDesampleTable(t *testing.T) {
	xs := []float64{0, 2, 4, 6, 8, 10}
	symbols, info, err := RealScalar(xs, 4)
	require.NoError(t, err)

	lifted := InverseRealScalar(symbols, info)
	require.Len(t, lifted, len(xs))
	for i, v := range lifted {
		assert.InDelta(t, xs[i], v, 3.0)
	}
}

func TestIntScalar_ShiftsToZero(t *testing.T) {
	xs := []int{10, 12, 11, 15}
	symbols, info, err := IntScalar(xs)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 2, 1, 5}, symbols)
	assert.Equal(t, 6, info.Alphabet)
}

func TestIntScalar_TooWideRange(t *testing.T) {
	xs := []int{0, 1000}
	_, _, err := IntScalar(xs)
	assert.ErrorIs(t, err, errs.ErrIntervalsCount)
}

func TestIntScalarInverse_RoundTrip(t *testing.T) {
	xs := []int{10, 12, 11, 15}
	symbols, info, err := IntScalar(xs)
	require.NoError(t, err)

	back := InverseIntScalar(symbols, info)
	assert.Equal(t, xs, back)
}
