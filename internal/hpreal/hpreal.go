// Package hpreal provides the wide-exponent high-precision real type used
// throughout the predictor pipeline (§3 "High-precision real") for
// probability products that routinely underflow an ordinary float64 over a
// long history.
//
// Real wraps math/big.Float, using github.com/ALTree/bigfloat for the Pow
// and Log2 operations big.Float itself doesn't provide. Precision is fixed
// at 128 bits of mantissa (two 64-bit words), comfortably above float64's
// 53 bits; big.Float's exponent range is far wider than float64's.
package hpreal

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Precision is the mantissa precision, in bits, used by every Real value.
const Precision = 128

// Real is a high-precision real number used for intermediate probability
// products. It behaves as a field with Pow, Log, Log2, Ceil, Abs, ordering,
// and convertibility to/from float64. Overflow is clamped rather than
// propagated as Inf, per §3.
type Real struct {
	v *big.Float
}

// newFloat allocates a big.Float at the package precision.
func newFloat() *big.Float {
	return new(big.Float).SetPrec(Precision)
}

// Zero returns the additive identity.
func Zero() Real { return Real{v: newFloat().SetInt64(0)} }

// One returns the multiplicative identity.
func One() Real { return Real{v: newFloat().SetInt64(1)} }

// FromFloat64 constructs a Real from an ordinary float64.
func FromFloat64(f float64) Real {
	if math.IsNaN(f) {
		f = 0
	}
	return Real{v: newFloat().SetFloat64(clampFloat(f))}
}

// FromInt constructs a Real from an integer.
func FromInt(i int) Real {
	return Real{v: newFloat().SetInt64(int64(i))}
}

func clampFloat(f float64) float64 {
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	default:
		return f
	}
}

// clamp bounds v's exponent so it never becomes an Inf big.Float, matching
// §3's "overflows are clamped, not fatal".
func clamp(v *big.Float) *big.Float {
	if v.IsInf() {
		if v.Signbit() {
			return newFloat().SetFloat64(-math.MaxFloat64)
		}
		return newFloat().SetFloat64(math.MaxFloat64)
	}
	return v
}

// Add returns r + other.
func (r Real) Add(other Real) Real {
	return Real{v: clamp(newFloat().Add(r.v, other.v))}
}

// Sub returns r - other.
func (r Real) Sub(other Real) Real {
	return Real{v: clamp(newFloat().Sub(r.v, other.v))}
}

// Mul returns r * other.
func (r Real) Mul(other Real) Real {
	return Real{v: clamp(newFloat().Mul(r.v, other.v))}
}

// Quo returns r / other. Division by zero clamps to the maximal
// representable magnitude with the correct sign rather than panicking.
func (r Real) Quo(other Real) Real {
	if other.IsZero() {
		if r.IsZero() {
			return Zero()
		}
		if r.Sign() < 0 {
			return Real{v: newFloat().SetFloat64(-math.MaxFloat64)}
		}
		return Real{v: newFloat().SetFloat64(math.MaxFloat64)}
	}
	return Real{v: clamp(newFloat().Quo(r.v, other.v))}
}

// Pow returns r**exp.
func (r Real) Pow(exp Real) Real {
	return Real{v: clamp(bigfloat.Pow(r.v, exp.v))}
}

// Log returns the natural logarithm of r. log(0) clamps to the most
// negative representable value instead of -Inf.
func (r Real) Log() Real {
	if r.IsZero() || r.Sign() < 0 {
		return Real{v: newFloat().SetFloat64(-math.MaxFloat64)}
	}
	return Real{v: clamp(bigfloat.Log(r.v))}
}

// Log2 returns the base-2 logarithm of r, used to turn a code length into a
// probability and back (§3's "p = 2^(-L)" rule).
func (r Real) Log2() Real {
	if r.IsZero() || r.Sign() < 0 {
		return Real{v: newFloat().SetFloat64(-math.MaxFloat64)}
	}
	ln2 := bigfloat.Log(newFloat().SetInt64(2))
	return Real{v: clamp(newFloat().Quo(bigfloat.Log(r.v), ln2))}
}

// Ceil returns the smallest integral value >= r.
func (r Real) Ceil() Real {
	f, _ := r.v.Float64()
	return FromFloat64(math.Ceil(f))
}

// Abs returns the absolute value of r.
func (r Real) Abs() Real {
	return Real{v: newFloat().Abs(r.v)}
}

// Sign returns -1, 0, or 1.
func (r Real) Sign() int {
	return r.v.Sign()
}

// IsZero reports whether r is exactly zero.
func (r Real) IsZero() bool {
	return r.v.Sign() == 0
}

// Cmp compares r and other, returning -1, 0, or 1.
func (r Real) Cmp(other Real) int {
	return r.v.Cmp(other.v)
}

// Less reports whether r < other.
func (r Real) Less(other Real) bool {
	return r.Cmp(other) < 0
}

// Float64 converts r to the nearest float64.
func (r Real) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

// String renders r using big.Float's default formatting, useful for debug output.
func (r Real) String() string {
	return r.v.Text('g', 10)
}

// Exp2Neg returns 2^(-l), used by the table transform's exponentiate step
// (§4.6 rule 2) to turn a bit-length column into an unnormalized probability.
func Exp2Neg(l Real) Real {
	two := newFloat().SetInt64(2)
	negL := newFloat().Neg(l.v)
	return Real{v: clamp(bigfloat.Pow(two, negL))}
}
