// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"moodjournal/internal/feature/auth/domain"
	"moodjournal/internal/feature/auth/domain/entity"
	"moodjournal/internal/feature/auth/usecase"
)

// userGorm is the GORM implementation of the UserRepository interface.
// It works against MySQL and Postgres in production and SQLite in tests.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm satisfies the usecase interface.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a userGorm backed by the given connection.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts a user and writes the assigned ID back into the entity.
// Uniqueness is enforced by the database indexes, so concurrent registrations
// with the same username or email cannot both succeed.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := fromUserEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if conflict := mapDuplicateKey(err); conflict != nil {
			return conflict
		}
		return err
	}
	u.ID = m.ID
	return nil
}

// FindByID retrieves a user by ID, or domain.ErrUserNotFound.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// FindByEmail retrieves a user by email, or domain.ErrUserNotFound.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// FindByUsername retrieves a user by username, or domain.ErrUserNotFound.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// SetActive updates the activation flag and returns the stored user.
func (r *userGorm) SetActive(ctx context.Context, id uint, active bool) (*entity.User, error) {
	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Update matched no row, but the flag may already hold the
		// requested value; distinguish by a lookup.
		return r.FindByID(ctx, id)
	}
	return r.FindByID(ctx, id)
}

// mapDuplicateKey translates driver-specific unique-violation errors into the
// domain conflict errors. Returns nil when the error is not a duplicate key.
//
// MySQL signals error 1062, Postgres SQLSTATE 23505, SQLite (tests) a
// "UNIQUE constraint failed" message. The violated column decides between
// the username and email conflicts.
func mapDuplicateKey(err error) error {
	var msg string

	var mysqlErr *mysql.MySQLError
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &mysqlErr) && mysqlErr.Number == 1062:
		msg = mysqlErr.Message
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		msg = pgErr.ConstraintName
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		msg = err.Error()
	default:
		return nil
	}

	switch {
	case strings.Contains(msg, "username"):
		return domain.ErrUsernameAlreadyExists
	case strings.Contains(msg, "email"):
		return domain.ErrEmailAlreadyExists
	}
	return domain.ErrUserConflict
}
