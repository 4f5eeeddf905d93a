// Package adaptor implements §4.4's non-compression adaptor: it turns any
// per-symbol stream predictor into a Compressor-shaped capability by
// accumulating a running probability with the Krichevsky mixture and
// reporting the resulting code length.
//
// This mirrors the teacher's adapter pattern of wrapping a narrower
// capability (a single predict call) behind the same port the rest of the
// system consumes (compress.Compressor), the way compress/lz4.go wraps
// pierrec/lz4 behind the Codec port.
package adaptor

import (
	"fmt"
	"math"

	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/internal/hpreal"
)

// Confidence is a stream predictor's self-reported confidence in a guess.
type Confidence int

const (
	NotConfident Confidence = iota
	Confident
)

// StreamPredictor predicts the next symbol from the symbols observed so
// far. Implementations include user-registered non-compression algorithms
// (forecast.RegisterNonCompressionAlgorithm); the multi-head automaton
// computes its own Krichevsky mixture internally and is registered as a
// Compressor directly instead of through this adaptor.
type StreamPredictor interface {
	// GiveNextPrediction returns a guess for the symbol following
	// historyPrefix, and how confident the guess is.
	GiveNextPrediction(historyPrefix []uint8) (guess uint8, confidence Confidence)
}

// Adaptor wraps a StreamPredictor into the compress.Compressor shape
// described by §4.4. It is not safe for concurrent use; callers needing
// concurrency construct one Adaptor per goroutine.
type Adaptor struct {
	predictor StreamPredictor
	min, max  int
	boundsSet bool
}

// New wraps predictor into an Adaptor.
func New(predictor StreamPredictor) *Adaptor {
	return &Adaptor{predictor: predictor}
}

// SetAlphabet advises the adaptor of the symbol range [min, max], which sets
// the alphabet size used by the Krichevsky mixture; without it the range is
// inferred from the first data seen.
func (a *Adaptor) SetAlphabet(min, max int) error {
	if max < min {
		return fmt.Errorf("%w: max=%d < min=%d", errs.ErrInvalidArgument, max, min)
	}
	a.min, a.max = min, max
	a.boundsSet = true
	return nil
}

// state holds one pass's Krichevsky accumulator, cloned at the end of a
// history compression and replayed per continuation.
type state struct {
	p            hpreal.Real
	lettersFreq  map[uint8]int
	confidentRun int
	total        int
}

func newState() *state {
	return &state{p: hpreal.One(), lettersFreq: make(map[uint8]int)}
}

func (s *state) clone() *state {
	out := &state{p: s.p, confidentRun: s.confidentRun, total: s.total, lettersFreq: make(map[uint8]int, len(s.lettersFreq))}
	for k, v := range s.lettersFreq {
		out.lettersFreq[k] = v
	}
	return out
}

// Compress returns the bit length of compressing data through the wrapped
// predictor, per §4.4's Krichevsky mixture.
func (a *Adaptor) Compress(data []byte) (int, error) {
	if data == nil {
		return 0, fmt.Errorf("%w: nil data", errs.ErrRuntime)
	}
	a.inferBounds(data)

	s := newState()
	a.run(s, nil, data)
	return codeLength(s.p), nil
}

// CompressContinuations snapshots the accumulator state at the end of
// history, then replays it independently for each continuation, per §4.4.
func (a *Adaptor) CompressContinuations(history []byte, continuations []continuation.Continuation) ([]int, error) {
	if history == nil {
		return nil, fmt.Errorf("%w: nil history", errs.ErrRuntime)
	}
	a.inferBounds(history)

	base := newState()
	a.run(base, nil, history)

	out := make([]int, len(continuations))
	for i, cont := range continuations {
		s := base.clone()
		a.run(s, history, cont.Symbols())
		out[i] = codeLength(s.p)
	}
	return out, nil
}

// inferBounds sets [min, max] from data's observed range if SetAlphabet was
// never called (§4.4's "alphabet bounds inferred from data on first call").
func (a *Adaptor) inferBounds(data []byte) {
	if a.boundsSet || len(data) == 0 {
		return
	}
	min, max := int(data[0]), int(data[0])
	for _, b := range data[1:] {
		v := int(b)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	a.min, a.max = min, max
	a.boundsSet = true
}

// run updates s in place for every symbol in data, using the predictor
// starting from the prefix consumed, which the caller has already processed.
func (a *Adaptor) run(s *state, consumed, data []byte) {
	alphabetSize := a.max - a.min + 1
	if alphabetSize < 1 {
		alphabetSize = 1
	}

	prefix := make([]uint8, 0, len(consumed)+len(data))
	prefix = append(prefix, consumed...)
	for _, b := range data {
		guess, confidence := a.predictor.GiveNextPrediction(prefix)
		observed := b

		var freq, total int
		if confidence == Confident {
			s.confidentRun++
			total = s.confidentRun
			if observed == guess {
				freq = s.confidentRun
			}
		} else {
			s.confidentRun = 0
			freq = s.lettersFreq[observed]
			total = s.total
		}

		ratio := hpreal.FromFloat64(float64(freq) + 0.5).Quo(hpreal.FromFloat64(float64(total) + float64(alphabetSize)/2))
		s.p = s.p.Mul(ratio)

		s.lettersFreq[observed]++
		s.total++
		prefix = append(prefix, observed)
	}
}

// codeLength returns ceil(-log2(p)), clamped to the host int maximum.
func codeLength(p hpreal.Real) int {
	if p.IsZero() {
		return math.MaxInt
	}
	negLog := hpreal.Zero().Sub(p.Log2())
	bits := negLog.Ceil().Float64()
	if bits >= float64(math.MaxInt) {
		return math.MaxInt
	}
	if bits < 0 {
		return 0
	}
	return int(bits)
}
