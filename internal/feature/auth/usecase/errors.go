// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email, ID or biometric key.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when attempting to register a user with an email that already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when a login attempt fails.
	// It deliberately does not distinguish between an unknown email, a wrong
	// password or an unknown biometric key.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
