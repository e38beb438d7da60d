package errors

import "errors"

var (
	ErrNotFound      = errors.New("facility not found")
	ErrInvalidID     = errors.New("invalid facility ID")
	ErrDuplicateName = errors.New("facility name already exists")

	ErrBookingNotFound = errors.New("facility booking not found")
	ErrStatusChanged   = errors.New("facility booking status changed concurrently")
)
