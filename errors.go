package sentiment

import "errors"

var (
	// ErrInvalidGridAxis indicates a grid axis with no candidate values.
	ErrInvalidGridAxis = errors.New("grid axis has no candidate values")

	// ErrSearchExhausted indicates that every grid combination failed to
	// fit. Individual combination failures are recovered; this fires only
	// when nothing survived.
	ErrSearchExhausted = errors.New("all grid combinations failed to fit")
)
