// Package dto defines the HTTP request/response shapes for the auth feature.
package dto

import (
	"time"

	"moodjournal/internal/feature/auth/domain/entity"
)

// RegisterRequest is the POST /users payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the external representation of a user.
// The password hash never appears here.
type UserResponse struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
	IsActive         bool   `json:"isActive"`
}

// NewUserResponse maps a domain user to its wire form.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		RegistrationDate: u.RegistrationDate.UTC().Format(time.RFC3339),
		IsActive:         u.IsActive,
	}
}
