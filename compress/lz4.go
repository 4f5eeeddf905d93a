package compress

import (
	"sync"

	"github.com/ictforecast/core/continuation"
	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse; adapted from
// the teacher's lz4CompressorPool in compress/lz4.go.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor implements the Compressor port over
// github.com/pierrec/lz4/v4.
type LZ4Compressor struct{}

var _ Compressor = LZ4Compressor{}

// NewLZ4Compressor returns an LZ4-backed Compressor.
func NewLZ4Compressor() LZ4Compressor { return LZ4Compressor{} }

// Compress returns the bit length of the LZ4 block encoding of data.
func (c LZ4Compressor) Compress(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// Incompressible block: LZ4 reports zero-length output for blocks
		// it couldn't shrink. The uncompressed length is the honest bound.
		return len(data) * 8, nil
	}
	return n * 8, nil
}

// CompressContinuations compresses history+continuation independently.
func (c LZ4Compressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return independentContinuations(c, history, continuations)
}

// SetAlphabet is a no-op: LZ4 needs no alphabet hint.
func (c LZ4Compressor) SetAlphabet(min, max int) error { return nil }
