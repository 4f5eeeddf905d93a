package automaton

import (
	"math"
	"testing"

	"github.com/ictforecast/core/continuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These three literal words reproduce the exact Krichevsky-mixture products
// documented in §8's automaton probability scenario. Since a.Compress
// reports ceil(-log2 P) rather than P itself, we reconstruct P via the
// ceil'd bit length and compare orders of magnitude instead of exact floats.
func TestCompress_LiteralWordTwoSymbols(t *testing.T) {
	a := New(0, 1)
	bits, err := a.Compress([]uint8{0, 1})
	require.NoError(t, err)

	want := 0.5 * 0.25 // §8
	wantBits := int(math.Ceil(-math.Log2(want)))
	assert.Equal(t, wantBits, bits)
}

func TestCompress_LiteralWordFiveSymbols(t *testing.T) {
	a := New(0, 1)
	bits, err := a.Compress([]uint8{0, 1, 0, 0, 1})
	require.NoError(t, err)

	want := 0.5 * 0.25 * 0.5 * 0.625 * 0.3 // §8
	wantBits := int(math.Ceil(-math.Log2(want)))
	assert.Equal(t, wantBits, bits)
}

func TestCompress_LiteralWordTenSymbols(t *testing.T) {
	a := New(0, 1)
	bits, err := a.Compress([]uint8{0, 1, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)

	want := 0.5 * 0.25 * 0.5 * 0.625 * 0.3 * (3.5 / 6) * (4.5 / 7) * (5.5 / 8) * (2.5 / 9) * 0.65 // §8
	wantBits := int(math.Ceil(-math.Log2(want)))
	assert.Equal(t, wantBits, bits)
}

func TestCompress_EmptyDataReturnsZeroBits(t *testing.T) {
	a := New(0, 1)
	bits, err := a.Compress(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, bits)
}

func TestSetAlphabet_RejectsInvertedRange(t *testing.T) {
	a := New(0, 1)
	err := a.SetAlphabet(5, 2)
	require.Error(t, err)
}

func TestCompressContinuations_MatchesIndependentCompress(t *testing.T) {
	history := []byte{0, 1, 0}
	cont := continuation.FromSymbols([]uint8{0, 1}, 2)

	a := New(0, 1)
	viaContinuation, err := a.CompressContinuations(history, []continuation.Continuation{cont})
	require.NoError(t, err)
	require.Len(t, viaContinuation, 1)

	b := New(0, 1)
	full := append(append([]byte(nil), history...), cont.Symbols()...)
	direct, err := b.Compress(full)
	require.NoError(t, err)

	assert.Equal(t, direct, viaContinuation[0])
}

func TestHeadName_CoversAllTenHeads(t *testing.T) {
	names := make(map[string]bool)
	for i := 0; i < headCount; i++ {
		names[HeadName(i)] = true
	}
	assert.Len(t, names, headCount)
}
