package database

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	// ErrStatusConflict means the guarded status update matched no row:
	// either the booking is gone or its status changed under our feet.
	ErrStatusConflict = errors.New("booking status already changed")
)
