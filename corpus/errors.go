package corpus

import "errors"

var (
	// ErrSourceUnavailable indicates the corpus API could not be reached or
	// timed out.
	ErrSourceUnavailable = errors.New("corpus source unavailable")

	// ErrEmptyResult indicates the source returned zero items.
	ErrEmptyResult = errors.New("corpus source returned no items")

	// ErrMalformedRecord indicates a record with empty text or an
	// unrecognized sentiment label.
	ErrMalformedRecord = errors.New("malformed corpus record")
)
