// Package api defines the shared HTTP response DTOs used by all handlers.
package api

// ErrorResponse is the generic error payload returned with 4xx/5xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the full list of business-rule violations
// for a rejected write. The list order matches the order the rules ran in.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// MessageResponse is a minimal acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
