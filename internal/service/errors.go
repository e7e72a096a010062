package service

import "errors"

var (
	// ErrValidation covers malformed quiz definitions and malformed award sets.
	ErrValidation = errors.New("validation failed")
	// ErrQuizNotFound is returned when a quiz is absent or inactive.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrResultNotFound is returned when an attempt result id is unknown.
	ErrResultNotFound = errors.New("result not found")
	// ErrForbidden is returned when a role or ownership check fails.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned on bad login or an inactive account.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a bearer token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
)
