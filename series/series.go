// Package series holds the preprocessing metadata (§3 "Preprocessing info")
// that travels alongside a sampled/differenced series for the lifetime of a
// forecasting call, plus the order-d adjacent-differencing transform and its
// inverse (integration) used by §4.6 rule 8 and §4.7's history pre-differencing.
//
// The differencing/integration pair is adapted from the teacher's delta-of-delta
// timestamp codec (internal/encoding/ts_delta.go): keep the raw values a pass
// consumes so a later pass can replay them in reverse and reconstruct the
// original scale.
package series

// PreprocessingInfo is the concrete realization of §3's "Preprocessing info"
// attached to a series or a ContinuationsDistribution table. O is the
// original element type before sampling (float64, []float64, uint8, []uint8).
type PreprocessingInfo[O any] struct {
	// DiffStack is a LIFO of the last elements removed by each differencing
	// pass, needed to integrate a forecast back to the original scale.
	DiffStack [][]float64

	// Alphabet is the post-sampling symbol cardinality.
	Alphabet int

	// DesampleTable holds, for real sources, the representative value for
	// each symbol (scalar: len==1) or for each coordinate x symbol (vector:
	// len==series count). Empty if the source was already discrete.
	DesampleTable [][]float64

	// DesampleIndent is the fractional padding applied to min/max before
	// bucketing (default 0.1).
	DesampleIndent float64

	// Sampled indicates whether inverse mapping through DesampleTable is needed.
	Sampled bool
}

// NewPreprocessingInfo returns a zero-value PreprocessingInfo with the
// default desample indent.
func NewPreprocessingInfo[O any]() PreprocessingInfo[O] {
	return PreprocessingInfo[O]{DesampleIndent: 0.1}
}

// Clone returns an independent deep copy, matching §3's "copies the
// preprocessing info by value" lifecycle rule.
func (p PreprocessingInfo[O]) Clone() PreprocessingInfo[O] {
	out := p
	out.DiffStack = make([][]float64, len(p.DiffStack))
	for i, s := range p.DiffStack {
		out.DiffStack[i] = append([]float64(nil), s...)
	}
	out.DesampleTable = make([][]float64, len(p.DesampleTable))
	for i, t := range p.DesampleTable {
		out.DesampleTable[i] = append([]float64(nil), t...)
	}
	return out
}

// PushDiff records the last raw value(s) consumed by one differencing pass.
func (p *PreprocessingInfo[O]) PushDiff(last []float64) {
	p.DiffStack = append(p.DiffStack, append([]float64(nil), last...))
}

// PopDiff removes and returns the most recently pushed differencing frame.
// It returns false if the stack is empty.
func (p *PreprocessingInfo[O]) PopDiff() ([]float64, bool) {
	if len(p.DiffStack) == 0 {
		return nil, false
	}
	last := p.DiffStack[len(p.DiffStack)-1]
	p.DiffStack = p.DiffStack[:len(p.DiffStack)-1]
	return last, true
}

// Difference applies order passes of adjacent differencing
// (y[i] = x[i+1] - x[i]) to xs, returning the differenced series and pushing
// one DiffStack frame per pass holding the last raw value consumed by that
// pass (needed later by Integrate).
func Difference[O any](xs []float64, order int, info *PreprocessingInfo[O]) []float64 {
	cur := xs
	for pass := 0; pass < order; pass++ {
		if len(cur) == 0 {
			break
		}
		info.PushDiff([]float64{cur[len(cur)-1]})

		next := make([]float64, len(cur)-1)
		for i := range next {
			next[i] = cur[i+1] - cur[i]
		}
		cur = next
	}
	return cur
}

// Integrate undoes order passes of adjacent differencing on forecast points,
// restoring the constant from the order last history elements stored in
// info's DiffStack (§4.6 rule 8, §8's "diff ∘ integrate" invariant).
func Integrate[O any](points []float64, order int, info *PreprocessingInfo[O]) []float64 {
	cur := points
	for pass := 0; pass < order; pass++ {
		last, ok := info.PopDiff()
		seed := 0.0
		if ok && len(last) > 0 {
			seed = last[0]
		}

		lifted := make([]float64, len(cur))
		acc := seed
		for i, d := range cur {
			acc += d
			lifted[i] = acc
		}
		cur = lifted
	}
	return cur
}
