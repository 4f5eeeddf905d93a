package compress

import (
	"fmt"
	"sync"

	"github.com/ictforecast/core/continuation"
	"github.com/klauspost/compress/zstd"
)

// zstdEncoderPool pools zstd encoders for reuse, eliminating per-call
// allocation overhead; adapted from the teacher's zstdEncoderPool in
// compress/zstd_pure.go.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

// ZstdCompressor implements the Compressor port over
// github.com/klauspost/compress/zstd.
type ZstdCompressor struct{}

var _ Compressor = ZstdCompressor{}

// NewZstdCompressor returns a Zstandard-backed Compressor.
func NewZstdCompressor() ZstdCompressor { return ZstdCompressor{} }

// Compress returns the bit length of the Zstandard encoding of data.
func (c ZstdCompressor) Compress(data []byte) (int, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	compressed := encoder.EncodeAll(data, nil)
	return len(compressed) * 8, nil
}

// CompressContinuations compresses history+continuation independently for
// each continuation; zstd's one-shot EncodeAll carries no cross-call state.
func (c ZstdCompressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return independentContinuations(c, history, continuations)
}

// SetAlphabet is a no-op: zstd needs no alphabet hint.
func (c ZstdCompressor) SetAlphabet(min, max int) error { return nil }
