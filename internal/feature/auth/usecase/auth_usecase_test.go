package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moodjournal/internal/feature/auth/domain"
	"moodjournal/internal/feature/auth/domain/entity"
	"moodjournal/internal/shared/validate"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*entity.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
	SetActiveFunc      func(ctx context.Context, id uint, active bool) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) SetActive(ctx context.Context, id uint, active bool) (*entity.User, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil, domain.ErrUserNotFound
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-token", nil
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				if user.PasswordHash == "" || user.PasswordHash == "password123" {
					t.Errorf("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if !user.IsActive {
					t.Errorf("new users must default to active")
				}
				user.ID = 1
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		user, err := uc.Register(context.Background(), "alice_1", "a@b.com", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected assigned ID 1, got %d", user.ID)
		}
	})

	t.Run("invalid payload returns every violation", func(t *testing.T) {
		created := false
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = true
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Register(context.Background(), "a!", "not-an-email", "short")

		var verr *validate.Error
		if !errors.As(err, &verr) {
			t.Fatalf("expected *validate.Error, got %v", err)
		}
		if len(verr.Messages) != 3 {
			t.Errorf("expected 3 violations, got %v", verr.Messages)
		}
		if created {
			t.Errorf("invalid payload must not reach the repository")
		}
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return domain.ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Register(context.Background(), "alice_1", "a@b.com", "password123")

		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:               1,
		Username:         "alice_1",
		Email:            "a@b.com",
		PasswordHash:     string(hashed),
		RegistrationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
	}

	t.Run("successful login returns token", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockJWT := &mockTokenGenerator{
			GenerateTokenFunc: func(userID uint, email string) (string, error) {
				if userID != testUser.ID {
					t.Errorf("token issued for wrong user: %d", userID)
				}
				return "signed-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		token, err := uc.Login(context.Background(), testUser.Email, password)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "signed-token" {
			t.Errorf("unexpected token: %q", token)
		}
	})

	t.Run("wrong password fails", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), testUser.Email, "wrong-password")

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email fails with the same error", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), "nobody@b.com", password)

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		inactive := *testUser
		inactive.IsActive = false
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &inactive, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{})
		_, err := uc.Login(context.Background(), inactive.Email, password)

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
