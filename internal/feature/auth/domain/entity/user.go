// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// newUserAgeDays is the account age below which a user counts as new.
const newUserAgeDays = 7

// User represents a registered journal owner.
//
// Instances returned by repositories are detached snapshots: mutating a field
// has no effect on stored state until the value is passed back through a
// repository operation.
type User struct {
	// ID is the unique identifier, assigned at creation and immutable.
	ID uint

	// Username is unique across all users: 3-20 characters, letters,
	// digits and underscores only.
	Username string

	// Email is the unique address used for login.
	Email string

	// PasswordHash is the bcrypt hash of the password. It is never logged
	// and never serialized into any external representation.
	PasswordHash string

	// RegistrationDate is the calendar date the account was created.
	// Set once, immutable.
	RegistrationDate time.Time

	// IsActive reports whether the account can log in. Toggled via
	// activate/deactivate, defaults to true.
	IsActive bool
}

// AccountAge returns the whole number of days between the registration date
// and today. The clock is caller-supplied for testability.
func (u *User) AccountAge(today time.Time) int {
	reg := time.Date(u.RegistrationDate.Year(), u.RegistrationDate.Month(), u.RegistrationDate.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(reg).Hours() / 24)
}

// IsNewUser reports whether the account is less than a week old.
func (u *User) IsNewUser(today time.Time) bool {
	return u.AccountAge(today) < newUserAgeDays
}
