// Package usecase implements the business logic for the auth feature.
package usecase

import "news_backend/internal/shared/apperr"

var (
	// ErrMissingField is returned when name, email or password is empty after trimming.
	ErrMissingField = apperr.New(apperr.ErrValidation, "name, email and password are required")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = apperr.New(apperr.ErrValidation, "password is too long")

	// ErrEmailTaken is returned when attempting to register an email that already exists.
	ErrEmailTaken = apperr.New(apperr.ErrConflict, "email already registered")

	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = apperr.New(apperr.ErrAuthentication, "invalid email or password")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = apperr.New(apperr.ErrNotFound, "session not found")
)
