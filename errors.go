package bytestats

import "errors"

// Errors returned by bytestats. Call sites wrap them with detail, so compare
// with errors.Is.
var (
	// ErrInvalidArgument is returned for an unknown dtype or kind, a
	// non-positive window size, or a zero grid dimension.
	ErrInvalidArgument = errors.New("bytestats: invalid argument")

	// ErrResourceExhausted is returned when a result would not fit the
	// configured memory budget or its 32-bit bins could overflow.
	ErrResourceExhausted = errors.New("bytestats: resource exhausted")
)
