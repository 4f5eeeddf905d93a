package table

import (
	"fmt"

	"github.com/ictforecast/core/errs"
	"github.com/ictforecast/core/internal/hpreal"
)

// Shift adds delta to every cell, used to subtract the global minimum for
// numerical stability or to align tables from different partition
// cardinalities (§4.6 rule 1).
func Shift(d *ContinuationsDistribution, delta hpreal.Real) {
	for i := range d.Rows() {
		for j := range d.Cols() {
			d.SetAt(i, j, d.GetAt(i, j).Add(delta))
		}
	}
}

// GlobalMin returns the smallest cell value across the whole table.
func GlobalMin(d *ContinuationsDistribution) hpreal.Real {
	min := hpreal.Zero()
	first := true
	for i := range d.Rows() {
		for j := range d.Cols() {
			v := d.GetAt(i, j)
			if first || v.Less(min) {
				min = v
				first = false
			}
		}
	}
	return min
}

// Exponentiate replaces every cell L with 2^(-L) (§4.6 rule 2), turning a
// code-length table into an unnormalized probability table.
func Exponentiate(d *ContinuationsDistribution) {
	for i := range d.Rows() {
		for j := range d.Cols() {
			d.SetAt(i, j, hpreal.Exp2Neg(d.GetAt(i, j)))
		}
	}
}

// UniformWeights returns k equal weights 1/k, the default group-mixture strategy.
func UniformWeights(k int) []hpreal.Real {
	w := make([]hpreal.Real, k)
	uniform := hpreal.FromFloat64(1.0 / float64(k))
	for i := range w {
		w[i] = uniform
	}
	return w
}

// CountableWeights returns the "countable" weight strategy: 1/i - 1/(i+1)
// for i = 1..k-1, with the last weight set to 1/k (§4.6 rule 3, used for
// partition mixtures and multi-alphabet merges).
func CountableWeights(k int) []hpreal.Real {
	w := make([]hpreal.Real, k)
	for i := 1; i <= k-1; i++ {
		w[i-1] = hpreal.FromFloat64(1.0/float64(i) - 1.0/float64(i+1))
	}
	w[k-1] = hpreal.FromFloat64(1.0 / float64(k))
	return w
}

// GroupMixture adds a new column named groupName whose cells are the
// weighted sum of the member columns (§4.6 rule 3). len(weights) must equal
// len(members).
func GroupMixture(d *ContinuationsDistribution, groupName string, members []string, weights []hpreal.Real) error {
	if len(members) < 2 {
		return fmt.Errorf("%w: group mixture needs at least 2 members", errs.ErrInvalidArgument)
	}
	if len(members) != len(weights) {
		return fmt.Errorf("%w: %d members but %d weights", errs.ErrInvalidArgument, len(members), len(weights))
	}

	return d.AddColumn(groupName, func(row string) hpreal.Real {
		sum := hpreal.Zero()
		for i, m := range members {
			v, err := d.Get(row, m)
			if err != nil {
				continue
			}
			sum = sum.Add(weights[i].Mul(v))
		}
		return sum
	})
}

// Normalize divides each column by its column sum so every column becomes a
// probability distribution (§4.6 rule 4). Columns summing to zero are left
// untouched.
func Normalize(d *ContinuationsDistribution) {
	for j := range d.Cols() {
		sum := hpreal.Zero()
		for i := range d.Rows() {
			sum = sum.Add(d.GetAt(i, j))
		}
		if sum.IsZero() {
			continue
		}
		for i := range d.Rows() {
			d.SetAt(i, j, d.GetAt(i, j).Quo(sum))
		}
	}
}

// Merge combines N tables built at distinct partition cardinalities
// alphabets[0] < alphabets[1] < ... < alphabets[N-1] into one table at the
// finest alphabet, per §4.6 rule 5: each coarser table's continuation c is
// looked up via c/s_i (Continuation.DivideBy(s_i), s_i = A_max/A_i) and
// combined with countable weights.
func Merge(tables []*ContinuationsDistribution, alphabets []int) (*ContinuationsDistribution, error) {
	n := len(tables)
	if n == 0 || len(alphabets) != n {
		return nil, fmt.Errorf("%w: merge needs matching tables and alphabets", errs.ErrInvalidArgument)
	}

	finest := tables[n-1]
	amax := alphabets[n-1]
	weights := CountableWeights(n)

	merged := NewContinuationsDistribution(finest.Conts, append([]string(nil), finest.Cols()...), amax)
	for i, t := range tables {
		if amax%alphabets[i] != 0 {
			return nil, fmt.Errorf("%w: alphabet %d does not divide %d", errs.ErrInvalidArgument, alphabets[i], amax)
		}
		s := amax / alphabets[i]

		for rowIdx, c := range finest.Conts {
			coarse := c.DivideBy(s)
			srcRow, ok := t.RowIndex(coarse.Key())
			if !ok {
				continue
			}
			for _, name := range finest.Cols() {
				srcCol, ok := t.ColIndex(name)
				if !ok {
					continue
				}
				tgtCol, _ := merged.ColIndex(name)
				v := t.GetAt(srcRow, srcCol)
				cur := merged.GetAt(rowIdx, tgtCol)
				merged.SetAt(rowIdx, tgtCol, cur.Add(weights[i].Mul(v)))
			}
		}
	}
	return merged, nil
}

// MarginalizePerStep computes D_j(symbol, name) = sum of T(c, name) over
// every continuation c whose symbol at position j equals symbol (§4.6 rule
// 6). The result is a symbol x name table over [0, d.Alphabet).
func MarginalizePerStep(d *ContinuationsDistribution, step int) (*LabeledTable[int, string, hpreal.Real], error) {
	rows := make([]int, d.Alphabet)
	for i := range rows {
		rows[i] = i
	}
	out := New(rows, append([]string(nil), d.Cols()...), hpreal.Zero())

	for i, c := range d.Conts {
		if step < 0 || step >= c.Len() {
			return nil, fmt.Errorf("%w: step %d out of range for continuation length %d", errs.ErrRange, step, c.Len())
		}
		symbol := int(c.At(step))
		for j := range d.Cols() {
			cur := out.GetAt(symbol, j)
			out.SetAt(symbol, j, cur.Add(d.GetAt(i, j)))
		}
	}
	return out, nil
}

// ForecastPoint is one horizon step's pointwise forecast, with optional
// confidence borders. Scalar series use a length-1 Point; vector series use
// one element per coordinate.
type ForecastPoint struct {
	Point []float64
	Left  []float64
	Right []float64
}

// MeanPerStep computes forecast(name).point = sum_symbol
// inverseSample(symbol) * D(symbol, name) for every column of a
// per-step symbol distribution (§4.6 rule 7).
func MeanPerStep(d *LabeledTable[int, string, hpreal.Real], inverseSample func(symbol int) []float64) map[string]ForecastPoint {
	out := make(map[string]ForecastPoint, d.NumCols())
	for j, name := range d.Cols() {
		var acc []float64
		for i, symbol := range d.Rows() {
			weight := d.GetAt(i, j).Float64()
			v := inverseSample(symbol)
			if acc == nil {
				acc = make([]float64, len(v))
			}
			for k := range v {
				acc[k] += weight * v[k]
			}
		}
		out[name] = ForecastPoint{Point: acc}
	}
	return out
}
