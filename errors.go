package orthtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("orthtree: invalid configuration")
	// ErrInvalidRegion signals a degenerate or non-finite bounding region.
	ErrInvalidRegion = errors.New("orthtree: invalid bounding region")
	// ErrMismatchedSlices signals bulk input slices of differing lengths.
	ErrMismatchedSlices = errors.New("orthtree: mismatched value/position slices")
	// ErrCorrupt signals a violated structural invariant, found by Check.
	ErrCorrupt = errors.New("orthtree: structural invariant violated")
)
