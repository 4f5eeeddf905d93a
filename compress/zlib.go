package compress

import (
	"bytes"
	"sync"

	"github.com/ictforecast/core/continuation"
	"github.com/klauspost/compress/zlib"
)

// zlibWriterPool pools zlib.Writer instances the same way zstdEncoderPool
// pools zstd encoders: a fresh writer per Compress call is allocation-heavy,
// Reset makes reuse safe.
var zlibWriterPool = sync.Pool{
	New: func() any {
		w, _ := zlib.NewWriterLevel(nil, zlib.DefaultCompression)
		return w
	},
}

// ZlibCompressor implements the Compressor port over
// github.com/klauspost/compress/zlib.
type ZlibCompressor struct{}

var _ Compressor = ZlibCompressor{}

// NewZlibCompressor returns a zlib-backed Compressor.
func NewZlibCompressor() ZlibCompressor { return ZlibCompressor{} }

// Compress returns the bit length of the zlib encoding of data.
func (c ZlibCompressor) Compress(data []byte) (int, error) {
	var buf bytes.Buffer
	w := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)

	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len() * 8, nil
}

// CompressContinuations compresses history+continuation independently.
func (c ZlibCompressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return independentContinuations(c, history, continuations)
}

// SetAlphabet is a no-op: zlib needs no alphabet hint.
func (c ZlibCompressor) SetAlphabet(min, max int) error { return nil }
