// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for user account operations.
// These errors represent business failures and are mapped to HTTP statuses by
// the transport layer.
var (
	// ErrUserNotFound indicates that no user matched the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists indicates a registration conflict on username.
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")

	// ErrEmailAlreadyExists indicates a registration conflict on email.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrUserConflict is the backstop returned when the storage layer
	// rejects an insert on a unique constraint and the violated column
	// cannot be determined.
	ErrUserConflict = errors.New("username or email already taken")

	// ErrInvalidCredentials indicates that email or password is wrong, or
	// that the account is deactivated. Login never reveals which.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
