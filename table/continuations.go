package table

import (
	"github.com/ictforecast/core/continuation"
	"github.com/ictforecast/core/internal/hpreal"
)

// ContinuationsDistribution is the code-length/probability table of §4.6:
// rows are continuations (keyed by Continuation.Key, since a Continuation's
// slice-backed symbols aren't directly comparable), columns are compressor
// or predictor names.
type ContinuationsDistribution struct {
	*LabeledTable[string, string, hpreal.Real]

	// Conts holds the continuation corresponding to each row, in row order,
	// since LabeledTable's row label alone (a string key) cannot recover
	// the original symbol sequence.
	Conts []continuation.Continuation

	// Alphabet is the cardinality the continuations were enumerated over.
	Alphabet int
}

// NewContinuationsDistribution builds an empty distribution over conts x names.
func NewContinuationsDistribution(conts []continuation.Continuation, names []string, alphabet int) *ContinuationsDistribution {
	rows := make([]string, len(conts))
	for i, c := range conts {
		rows[i] = c.Key()
	}
	return &ContinuationsDistribution{
		LabeledTable: New(rows, names, hpreal.Zero()),
		Conts:        append([]continuation.Continuation(nil), conts...),
		Alphabet:     alphabet,
	}
}

// SetBits records a code length (in bits) for continuation c under name,
// storing it as a high-precision real so later transforms compose cleanly.
func (d *ContinuationsDistribution) SetBits(c continuation.Continuation, name string, bits int) error {
	return d.Set(c.Key(), name, hpreal.FromFloat64(float64(bits)))
}

// Clone returns a deep copy whose cell mutations do not affect d.
func (d *ContinuationsDistribution) Clone() *ContinuationsDistribution {
	out := NewContinuationsDistribution(d.Conts, append([]string(nil), d.Cols()...), d.Alphabet)
	for i := range d.Rows() {
		for j := range d.Cols() {
			out.SetAt(i, j, d.GetAt(i, j))
		}
	}
	return out
}
