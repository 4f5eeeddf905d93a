package compress

import (
	"github.com/ictforecast/core/continuation"
	"github.com/klauspost/compress/s2"
)

// S2Compressor implements the Compressor port over
// github.com/klauspost/compress/s2.
type S2Compressor struct{}

var _ Compressor = S2Compressor{}

// NewS2Compressor returns an S2-backed Compressor.
func NewS2Compressor() S2Compressor { return S2Compressor{} }

// Compress returns the bit length of the S2 encoding of data.
func (c S2Compressor) Compress(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	return len(s2.Encode(nil, data)) * 8, nil
}

// CompressContinuations compresses history+continuation independently.
func (c S2Compressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return independentContinuations(c, history, continuations)
}

// SetAlphabet is a no-op: S2 needs no alphabet hint.
func (c S2Compressor) SetAlphabet(min, max int) error { return nil }
