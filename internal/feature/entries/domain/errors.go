// Package domain defines domain-level errors for the entries feature.
package domain

import "errors"

var (
	// ErrEntryNotFound indicates that no entry matched the given ID.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrOwnerNotFound indicates that an entry references a user that does
	// not exist. Entry creation requires an existing owner.
	ErrOwnerNotFound = errors.New("owning user not found")

	// ErrInvalidArgument indicates a contract violation in a direct domain
	// call (out-of-range mood, blank tag). User-facing input is validated
	// before it reaches the domain, so this surfacing through HTTP is a
	// defect, not a user error.
	ErrInvalidArgument = errors.New("invalid argument")
)
