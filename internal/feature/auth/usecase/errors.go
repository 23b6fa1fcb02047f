// Package usecase implements the business logic for the auth feature.
package usecase

import "watchlist_backend/internal/shared/apperror"

var (
	// ErrCredentialsRequired is returned when email or password is empty.
	ErrCredentialsRequired = apperror.Validation("email and password are required")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72 byte limit.
	ErrPasswordTooLong = apperror.Validation("password must be at most 72 bytes")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperror.Conflict("email already exists")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = apperror.Unauthorized("invalid credentials")

	// ErrInvalidToken is returned when a bearer token is missing, malformed, expired or forged.
	ErrInvalidToken = apperror.Unauthorized("invalid token")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperror.NotFound("user not found")
)
