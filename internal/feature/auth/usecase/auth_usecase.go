// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moodjournal/internal/feature/auth/domain"
	"moodjournal/internal/feature/auth/domain/entity"
	"moodjournal/internal/shared/validate"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its identity. The storage
	// layer enforces username and email uniqueness atomically; on a
	// constraint violation it returns one of the domain conflict errors.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns the user with the given ID, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail returns the user with the given email, or domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername returns the user with the given username, or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// SetActive flips the activation flag. Returns domain.ErrUserNotFound
	// if the user does not exist.
	SetActive(ctx context.Context, id uint, active bool) (*entity.User, error)
}

// TokenGenerator issues signed tokens for authenticated users.
type TokenGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// AuthUsecase implements registration, login and account lifecycle.
type AuthUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	now    func() time.Time
}

// NewAuthUsecase creates a new AuthUsecase with the given collaborators.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register validates the payload, hashes the password and persists the user.
// Validation failures come back as *validate.Error carrying every violation;
// uniqueness conflicts come back as the domain conflict errors. The unique
// indexes in storage are authoritative, so two concurrent registrations with
// the same email cannot both succeed.
func (u *AuthUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if msgs := validate.UserPayload(username, email, password); len(msgs) > 0 {
		return nil, &validate.Error{Messages: msgs}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:         username,
		Email:            email,
		PasswordHash:     string(hashed),
		RegistrationDate: u.now(),
		IsActive:         true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a signed token on success.
// A bcrypt comparison runs even when the user does not exist, so lookup
// timing does not leak account existence.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the failure path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// Activate re-enables a deactivated account.
func (u *AuthUsecase) Activate(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.SetActive(ctx, id, true)
}

// Deactivate disables an account. Users are never hard-deleted.
func (u *AuthUsecase) Deactivate(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.SetActive(ctx, id, false)
}

// GetUser returns the user with the given ID.
func (u *AuthUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return user, nil
}
