package compress

import (
	"bytes"

	"github.com/dsnet/compress/bzip2"

	"github.com/ictforecast/core/continuation"
)

// Bzip2Compressor implements the Compressor port over
// github.com/dsnet/compress/bzip2, grounded on the pack's vendored copy of
// that writer (other_examples' dsnet-compress manifest).
type Bzip2Compressor struct{}

var _ Compressor = Bzip2Compressor{}

// NewBzip2Compressor returns a bzip2-backed Compressor.
func NewBzip2Compressor() Bzip2Compressor { return Bzip2Compressor{} }

// Compress returns the bit length of the bzip2 encoding of data.
func (c Bzip2Compressor) Compress(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len() * 8, nil
}

// CompressContinuations compresses history+continuation independently.
func (c Bzip2Compressor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	return independentContinuations(c, history, continuations)
}

// SetAlphabet is a no-op: bzip2 needs no alphabet hint.
func (c Bzip2Compressor) SetAlphabet(min, max int) error { return nil }
