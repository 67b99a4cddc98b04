package adapters

import (
	"time"

	"moodjournal/internal/feature/auth/domain/entity"
)

// UserModel is the persistence representation of a user. Keeping the GORM
// schema here keeps the domain entity free of storage concerns.
type UserModel struct {
	ID               uint      `gorm:"primaryKey"`
	Username         string    `gorm:"uniqueIndex;size:20;not null"`
	Email            string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string    `gorm:"size:255;not null"`
	RegistrationDate time.Time `gorm:"not null"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName fixes the table name regardless of GORM pluralization settings.
func (UserModel) TableName() string { return "users" }

func toUserEntity(m *UserModel) *entity.User {
	return &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		RegistrationDate: m.RegistrationDate,
		IsActive:         m.IsActive,
	}
}

func fromUserEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		RegistrationDate: u.RegistrationDate,
		IsActive:         u.IsActive,
	}
}
