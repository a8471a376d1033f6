package domain

import "errors"

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrEmailExists is raised when a registration or create collides with an
	// already registered email.
	ErrEmailExists = errors.New("email already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrForbidden          = errors.New("access forbidden")

	// ErrTooManyLoginAttempts is raised when the login throttle has seen too
	// many consecutive failures for an email.
	ErrTooManyLoginAttempts = errors.New("too many login attempts")
)
