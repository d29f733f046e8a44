package service

import "errors"

var (
	// ErrValidation marks a domain-rule violation: unavailable item booked,
	// self-booking, decision on a non-waiting booking, owner query with no
	// items, comment without a finished rental.
	ErrValidation = errors.New("validation error")

	// ErrAccessDenied marks a caller lacking the required relationship
	// (not the owner, not the booker) for the requested operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrEmailExists marks an email uniqueness violation.
	ErrEmailExists = errors.New("email already in use")
)
