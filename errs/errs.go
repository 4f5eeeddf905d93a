// Package errs defines the sentinel errors surfaced by the forecaster core.
//
// Call sites wrap a sentinel with additional context using fmt.Errorf's %w
// verb (e.g. fmt.Errorf("%w: horizon=%d", errs.ErrInvalidArgument, h)), so
// callers can test for a specific kind with errors.Is while still getting a
// descriptive message.
package errs

import "errors"

var (
	// ErrInvalidArgument reports a violated precondition on facade or selector parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSeriesTooShort reports a real sampler called with fewer than 2 points.
	ErrSeriesTooShort = errors.New("series too short")

	// ErrEmptyInput reports a base conversion called on an empty digit list.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidBase reports a base-conversion base below 2.
	ErrInvalidBase = errors.New("invalid base")

	// ErrInvalidDigit reports a digit greater than or equal to its base.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrIntervalsCount reports a vector real sampling alphabet larger than 256.
	ErrIntervalsCount = errors.New("intervals count exceeds 256")

	// ErrDifferentHistoryLengths reports vector input series of unequal length.
	ErrDifferentHistoryLengths = errors.New("different history lengths")

	// ErrRange reports an out-of-range access in continuation or inverse sampling.
	ErrRange = errors.New("range error")

	// ErrNotImplemented reports a caller-visible attempt to use an unimplemented path.
	ErrNotImplemented = errors.New("not implemented")

	// ErrCompressorsError reports pool registration conflicts, unknown names, or backend failures.
	ErrCompressorsError = errors.New("compressors error")

	// ErrSelectorError reports an empty selector result or target exceeding candidates.
	ErrSelectorError = errors.New("selector error")

	// ErrRuntime reports a programming error such as a nil data pointer.
	ErrRuntime = errors.New("runtime error")
)
