// Package compress implements the Compressor port and pool of §4.3: a
// three-operation capability (Compress, CompressContinuations, SetAlphabet)
// realized by concrete backends, each grounded on a real compression
// library, plus a name-keyed Pool that dispatches to them.
//
// The port collapses the teacher's Compressor/Decompressor/Codec split
// (compress/codec.go) to the single capability this domain needs: a
// forecaster only ever needs the *length* of a lossless encoding, never the
// encoding itself, so there is no Decompressor here.
package compress

import (
	"fmt"

	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/errs"
)

// Compressor is the port of §4.3: a capability that reports the bit length
// of a lossless encoding of a byte stream, without ever materializing the
// encoding itself.
type Compressor interface {
	// Compress returns the length, in bits, of a lossless encoding of data.
	Compress(data []byte) (int, error)

	// CompressContinuations returns, for each continuation, the bit length
	// of compressing history followed by that continuation's symbols. A
	// backend may reuse internal state across continuations as long as the
	// result matches independently compressing each concatenation.
	CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error)

	// SetAlphabet advises the backend of the symbol range [min, max]. It is
	// purely advisory for stream compressors and a hard requirement for the
	// automaton backend.
	SetAlphabet(min, max int) error
}

// Assemble concatenates history with a continuation's symbols, the shared
// byte layout every backend's CompressContinuations compresses.
func Assemble(dst []byte, history []byte, cont continuation.Continuation) []byte {
	dst = append(dst[:0], history...)
	dst = append(dst, cont.Symbols()...)
	return dst
}

// independentContinuations is the default CompressContinuations strategy:
// compress each assembled history+continuation independently. The codec
// backends here (zstd, zlib, bzip2, lz4, s2) call this helper; automation
// delegates to the automaton, which runs its own per-continuation loop.
func independentContinuations(c Compressor, history []byte, continuations []continuation.Continuation) ([]int, error) {
	out := make([]int, len(continuations))
	var scratch []byte
	for i, cont := range continuations {
		scratch = Assemble(scratch, history, cont)
		bits, err := c.Compress(scratch)
		if err != nil {
			return nil, fmt.Errorf("%w: continuation %d: %v", errs.ErrCompressorsError, i, err)
		}
		out[i] = bits
	}
	return out, nil
}
