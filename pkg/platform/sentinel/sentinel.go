package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: the record does not exist in the store
//   - ErrConflict: a write collided with an existing record
//   - ErrInvalidState: the record is in the wrong state for the write (closed audit)
//   - ErrUnavailable: the backing store could not be reached
//
// Validation failures use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
