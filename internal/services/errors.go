package services

import "errors"

// Client-side rejection reasons. Handlers map these to 4xx responses;
// anything else coming out of a service is a server problem.
var (
	// ErrInvalidPayload means a mandatory field was missing or empty.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrDuplicatePending means a verification request for the email
	// is already waiting for review.
	ErrDuplicatePending = errors.New("verification request already pending")

	// ErrAlreadyVerified means the email already belongs to a
	// verified affiliate.
	ErrAlreadyVerified = errors.New("email already verified")
)
