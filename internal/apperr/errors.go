package apperr

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses; services wrap them with %w and context.
var (
	// -- Authentication/Authorization --
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// -- Resource State --
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")

	// -- OTP verification --
	ErrInvalidOTP = errors.New("invalid OTP")
)
