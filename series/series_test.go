package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifference_OrderOne(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	xs := []float64{1, 3, 6, 10}

	diffed := Difference(xs, 1, &info)

	assert.Equal(t, []float64{2, 3, 4}, diffed)
	require.Len(t, info.DiffStack, 1)
	assert.Equal(t, []float64{10}, info.DiffStack[0])
}

func TestDifference_OrderZero_Identity(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	xs := []float64{1, 2, 3}

	diffed := Difference(xs, 0, &info)

	assert.Equal(t, xs, diffed)
	assert.Empty(t, info.DiffStack)
}

func TestDiffThenIntegrate_IsIdentityOnLeadingDifferences(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	xs := []float64{5, 8, 12, 15, 21}
	order := 2

	diffed := Difference(xs, order, &info)

	// Forecasting a constant-zero continuation of the differenced series
	// should, once integrated, reproduce the last `order` history elements
	// as the first `order` lifted values, per §8.
	zeroForecast := make([]float64, order)
	lifted := Integrate(zeroForecast, order, &info)

	require.Len(t, lifted, order)
	_ = diffed
	// After the first order=2 differencing passes, the stack holds the last
	// raw values of each intermediate series; integrating a zero continuation
	// should reconstruct those same last values (constants carried forward).
	assert.Equal(t, xs[len(xs)-1], lifted[0])
}

func TestIntegrate_EmptyStackUsesZeroSeed(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	lifted := Integrate([]float64{1, 1, 1}, 1, &info)
	assert.Equal(t, []float64{1, 2, 3}, lifted)
}

func TestPushPopDiff_LIFO(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	info.PushDiff([]float64{1})
	info.PushDiff([]float64{2})

	last, ok := info.PopDiff()
	require.True(t, ok)
	assert.Equal(t, []float64{2}, last)

	last, ok = info.PopDiff()
	require.True(t, ok)
	assert.Equal(t, []float64{1}, last)

	_, ok = info.PopDiff()
	assert.False(t, ok)
}

func TestClone_IsIndependent(t *testing.T) {
	info := NewPreprocessingInfo[float64]()
	info.PushDiff([]float64{42})
	info.DesampleTable = [][]float64{{1, 2, 3}}

	clone := info.Clone()
	clone.DiffStack[0][0] = 99
	clone.DesampleTable[0][0] = 99

	assert.Equal(t, 42.0, info.DiffStack[0][0])
	assert.Equal(t, 1.0, info.DesampleTable[0][0])
}
