package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ictforecast/core/codelength"
	"github.com/ictforecast/core/compress"
)

func newComputer(t *testing.T) *codelength.Computer {
	t.Helper()
	p := compress.NewPool()
	require.NoError(t, p.Register("zstd", compress.NewZstdCompressor()))
	return codelength.New(p)
}

func TestDiscrete_ProducesNormalizableTable(t *testing.T) {
	d := &Discrete{Computer: newComputer(t), Alphabet: 2}
	dist, info, err := d.Predict([]float64{0, 1, 0, 1, 0}, 1, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 2, info.Alphabet)
	assert.Equal(t, 2, dist.NumRows())

	for i := range dist.Rows() {
		v := dist.GetAt(i, 0)
		assert.GreaterOrEqual(t, v.Float64(), 0.0)
	}
}

func TestDiscrete_ShiftsSymbolsByObservedMinimum(t *testing.T) {
	d := &Discrete{Computer: newComputer(t), Alphabet: 3}
	dist, info, err := d.Predict([]float64{5, 6, 5, 6, 5}, 1, []string{"zstd"})
	require.NoError(t, err)
	require.True(t, info.Sampled)
	require.Len(t, info.DesampleTable, 1)
	assert.Equal(t, []float64{5, 6, 7}, info.DesampleTable[0])
	assert.Equal(t, 3, dist.NumRows())
}

func TestRealSingleAlphabet_SamplesAtFixedQ(t *testing.T) {
	p := &RealSingleAlphabet{Computer: newComputer(t), Q: 4}
	history := []float64{1, 2, 3, 4, 5, 6, 7}
	dist, info, err := p.Predict(history, 2, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 4, info.Alphabet)
	assert.Equal(t, 16, dist.NumRows()) // 4^2 continuations
}

func TestRealMultiAlphabet_MergesAcrossPowerOfTwoLevels(t *testing.T) {
	p := &RealMultiAlphabet{Computer: newComputer(t), QMax: 4}
	history := []float64{1, 2, 3, 4, 5, 6, 7}
	dist, info, err := p.Predict(history, 2, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 4, dist.Alphabet)
	assert.Equal(t, 4, info.Alphabet) // finest level's info
	assert.Equal(t, 16, dist.NumRows())
}

func TestRealMultiAlphabet_QMaxBelowTwoErrors(t *testing.T) {
	p := &RealMultiAlphabet{Computer: newComputer(t), QMax: 1}
	_, _, err := p.Predict([]float64{1, 2, 3}, 1, []string{"zstd"})
	assert.Error(t, err)
}

func TestCompressionBasedPredictor_DifferencesThenNormalizes(t *testing.T) {
	w := &CompressionBasedPredictor{
		Inner:      &RealSingleAlphabet{Computer: newComputer(t), Q: 4},
		Difference: 1,
	}
	history := []float64{10, 12, 11, 13, 14, 12, 15}
	dist, info, err := w.Predict(history, 2, []string{"zstd"})
	require.NoError(t, err)
	require.Len(t, info.DiffStack, 1)

	for j := range dist.Cols() {
		sum := 0.0
		for i := range dist.Rows() {
			sum += dist.GetAt(i, j).Float64()
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	}
}

func TestCompressionBasedPredictor_AppliesGroupMixture(t *testing.T) {
	pool := compress.NewPool()
	require.NoError(t, pool.Register("zstd", compress.NewZstdCompressor()))
	require.NoError(t, pool.Register("s2", compress.NewS2Compressor()))
	computer := codelength.New(pool)

	w := &CompressionBasedPredictor{
		Inner:  &RealSingleAlphabet{Computer: computer, Q: 2},
		Groups: [][]string{{"zstd", "s2"}},
	}
	history := []float64{1, 2, 3, 4, 5}
	dist, _, err := w.Predict(history, 1, []string{"zstd", "s2"})
	require.NoError(t, err)

	_, ok := dist.ColIndex("zstd_s2")
	assert.True(t, ok)
}
