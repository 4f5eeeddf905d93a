package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorDiscrete_ProducesTableAtGivenAlphabet(t *testing.T) {
	d := &VectorDiscrete{Computer: newComputer(t), Alphabet: 4}
	dist, info, err := d.Predict([]float64{0, 1, 2, 3, 0, 1}, 1, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 4, info.Alphabet)
	assert.Equal(t, 4, dist.NumRows())
}

func TestVectorRealSingleAlphabet_FoldsCoordinatesBeforeSampling(t *testing.T) {
	p := &VectorRealSingleAlphabet{Computer: newComputer(t), N: 2}
	points := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	dist, info, err := p.Predict(points, 1, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 4, info.Alphabet) // 2^2 coordinates
	assert.Equal(t, 4, dist.NumRows())
}

func TestVectorRealMultiAlphabet_MergesAcrossLevels(t *testing.T) {
	p := &VectorRealMultiAlphabet{Computer: newComputer(t), NMax: 2}
	points := [][]float64{{1, 10}, {2, 20}, {3, 30}, {4, 40}}
	dist, info, err := p.Predict(points, 1, []string{"zstd"})
	require.NoError(t, err)
	assert.Equal(t, 4, info.Alphabet)
	assert.Equal(t, 4, dist.NumRows())
}

func TestVectorRealMultiAlphabet_NMaxBelowTwoErrors(t *testing.T) {
	p := &VectorRealMultiAlphabet{Computer: newComputer(t), NMax: 1}
	_, _, err := p.Predict([][]float64{{1, 2}, {3, 4}}, 1, []string{"zstd"})
	assert.Error(t, err)
}
