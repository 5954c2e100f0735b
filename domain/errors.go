package domain

import "errors"

var (
	// ErrInvalidGrid reports malformed input: wrong length, an out-of-range
	// symbol, or a duplicate digit within a row, column, or box.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrConflict reports a placement that would violate a grid invariant.
	// The attempted mutation is a no-op.
	ErrConflict = errors.New("placement conflict")
)
