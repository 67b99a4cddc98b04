// Package adapters provides the repository implementations for the entries feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"moodjournal/internal/feature/entries/domain"
	"moodjournal/internal/feature/entries/domain/entity"
	"moodjournal/internal/feature/entries/usecase"
)

// entryGorm is the GORM implementation of the entry repository interfaces.
type entryGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check that entryGorm satisfies the usecase interface.
var _ usecase.EntryRepository = (*entryGorm)(nil)

// NewEntryRepository creates an entryGorm backed by the given connection.
func NewEntryRepository(db *gorm.DB) *entryGorm {
	return &entryGorm{db: db, now: time.Now}
}

// Create persists a new entry after verifying the owner exists, and writes
// the assigned ID back into the entity. Users are never hard-deleted, so the
// existence check cannot race with a user removal.
func (r *entryGorm) Create(ctx context.Context, e *entity.Entry) error {
	m, err := fromEntryEntity(e)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Table("users").Where("id = ?", e.UserID).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return domain.ErrOwnerNotFound
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		e.ID = m.ID
		return nil
	})
}

// FindAllByUser returns the user's entries ordered by created_at descending.
func (r *entryGorm) FindAllByUser(ctx context.Context, userID uint) ([]entity.Entry, error) {
	var models []EntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Entry, 0, len(models))
	for i := range models {
		e, err := toEntryEntity(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// FindByID retrieves an entry by ID, or domain.ErrEntryNotFound.
func (r *entryGorm) FindByID(ctx context.Context, id uint) (*entity.Entry, error) {
	var m EntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return toEntryEntity(&m)
}

// Update overwrites the mutable fields of the stored entry and refreshes its
// edit timestamp. ID, owner and creation time are immutable and untouched.
func (r *entryGorm) Update(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	var updated *entity.Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m EntryModel
		if err := tx.Where("id = ?", e.ID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEntryNotFound
			}
			return err
		}

		incoming, err := fromEntryEntity(e)
		if err != nil {
			return err
		}

		now := r.now()
		m.Title = incoming.Title
		m.Content = incoming.Content
		m.MoodRating = incoming.MoodRating
		m.Tags = incoming.Tags
		m.EditedAt = &now

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		updated, err = toEntryEntity(&m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the entry and reports whether a row existed. The second
// delete of the same ID simply returns false.
func (r *entryGorm) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&EntryModel{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistsByTitle reports whether the user already has an entry with exactly
// this title. The import engine uses it as its duplicate key.
func (r *entryGorm) ExistsByTitle(ctx context.Context, userID uint, title string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&EntryModel{}).
		Where("user_id = ? AND title = ?", userID, title).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
