package sample

import (
	"fmt"

	"github.com/ictforecast/core/errs"
)

// ToDec folds a little-endian list of base-`base` digits into its integer
// value, the "to_dec" helper of §4.2 used to collapse a per-coordinate
// vector index into a single alphabet symbol.
func ToDec(digits []int, base int) (int, error) {
	if base < 2 {
		return 0, fmt.Errorf("%w: base=%d", errs.ErrInvalidBase, base)
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: digits", errs.ErrEmptyInput)
	}

	value := 0
	mul := 1
	for _, d := range digits {
		if d < 0 || d >= base {
			return 0, fmt.Errorf("%w: digit=%d base=%d", errs.ErrInvalidDigit, d, base)
		}
		value += d * mul
		mul *= base
	}
	return value, nil
}

// FromDec expands value into length little-endian digits over base `base`,
// the "from_dec" helper of §4.2 used to decode a folded alphabet symbol back
// into per-coordinate indices.
func FromDec(value int, base int, length int) ([]int, error) {
	if base < 2 {
		return nil, fmt.Errorf("%w: base=%d", errs.ErrInvalidBase, base)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: digits", errs.ErrEmptyInput)
	}

	digits := make([]int, length)
	for i := 0; i < length; i++ {
		digits[i] = value % base
		value /= base
	}
	return digits, nil
}
