// Package validate implements the business-rule validation for user and entry
// payloads. Each function returns the complete list of human-readable
// violations; an empty list means the payload is valid. Validation never
// panics and never stops at the first violation.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MoodMin and MoodMax bound the optional mood rating.
	MoodMin = 1
	MoodMax = 10

	minPasswordLength = 8
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// Error wraps a non-empty violation list so usecases can return it through a
// plain error value. Handlers unwrap it with errors.As and respond 400 with
// the full list.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// EntryPayload checks a journal entry write request.
// The mood rating is optional; pass nil when the client omitted it.
func EntryPayload(title, content string, moodRating *int) []string {
	var errs []string
	if strings.TrimSpace(title) == "" {
		errs = append(errs, "title must not be blank")
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, "content must not be blank")
	}
	if moodRating != nil && (*moodRating < MoodMin || *moodRating > MoodMax) {
		errs = append(errs, fmt.Sprintf("mood rating must be between %d and %d", MoodMin, MoodMax))
	}
	return errs
}

// UserPayload checks a registration request.
func UserPayload(username, email, password string) []string {
	var errs []string
	switch {
	case strings.TrimSpace(username) == "":
		errs = append(errs, "username must not be blank")
	case !usernamePattern.MatchString(username):
		errs = append(errs, "username must be 3-20 characters of letters, digits or underscores")
	}
	switch {
	case strings.TrimSpace(email) == "":
		errs = append(errs, "email must not be blank")
	case !strings.Contains(email, "@") || !strings.Contains(email, "."):
		errs = append(errs, "email must be a valid address")
	}
	switch {
	case strings.TrimSpace(password) == "":
		errs = append(errs, "password must not be blank")
	case len(password) < minPasswordLength:
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	return errs
}
