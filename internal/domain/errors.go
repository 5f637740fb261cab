package domain

import "errors"

// Error categories. Every error returned by use cases and services wraps exactly one of them,
// so callers can decide whether to fix input, wait, re-fetch or retry.
var (
	// ErrValidation malformed or missing input, reported before any store access
	ErrValidation = errors.New("validation error")

	// ErrCapacityExceeded selected services do not fit into the remaining window
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrPreconditionFailed a state machine guard failed
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrConflict the slot was taken by a concurrent booking
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable transient infrastructure failure, safe to retry
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound the referenced record does not exist
	ErrNotFound = errors.New("not found")
)
