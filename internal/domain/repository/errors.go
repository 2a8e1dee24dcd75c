package repository

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConcurrency = errors.New("concurrent modification")
	ErrPersistence = errors.New("persistence failure")
	ErrDuplicate   = errors.New("duplicate record")

	// ErrProcessing means another execution holds the idempotency lock.
	// Callers should retry later.
	ErrProcessing      = errors.New("request is already being processed")
	ErrRequestMismatch = errors.New("idempotency key reused with a different request")
	ErrInvalidCursor   = errors.New("invalid cursor")
)
