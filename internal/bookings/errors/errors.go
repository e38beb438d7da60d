package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrStatusChanged = errors.New("reservation status changed concurrently")

	ErrLockHeld = errors.New("booking lock is held by another request")
)
