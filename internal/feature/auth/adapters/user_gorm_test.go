package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moodjournal/internal/feature/auth/domain"
	"moodjournal/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&UserModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func testUser(username, email string) *entity.User {
	return &entity.User{
		Username:         username,
		Email:            email,
		PasswordHash:     "hashed_password",
		RegistrationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful creation assigns identity", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		u := testUser("alice_1", "a@b.com")
		err := repo.Create(context.Background(), u)

		assert.NoError(t, err)
		assert.NotZero(t, u.ID, "ID is not set")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), testUser("alice_1", "a@b.com")))

		err := repo.Create(context.Background(), testUser("bob_2", "a@b.com"))
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), testUser("alice_1", "a@b.com")))

		err := repo.Create(context.Background(), testUser("alice_1", "other@b.com"))
		assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	u := testUser("alice_1", "a@b.com")
	require.NoError(t, repo.Create(context.Background(), u))

	t.Run("by id", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice_1", got.Username)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("by username", func(t *testing.T) {
		got, err := repo.FindByUsername(context.Background(), "alice_1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("absent user maps to ErrUserNotFound", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 9999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.FindByEmail(context.Background(), "missing@b.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.FindByUsername(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserGorm_SetActive(t *testing.T) {
	t.Run("deactivate then reactivate", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))
		u := testUser("alice_1", "a@b.com")
		require.NoError(t, repo.Create(context.Background(), u))

		got, err := repo.SetActive(context.Background(), u.ID, false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		got, err = repo.SetActive(context.Background(), u.ID, true)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		_, err := repo.SetActive(context.Background(), 42, false)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
