package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"moodjournal/internal/feature/entries/domain/entity"
)

// EntryModel is the persistence representation of a journal entry. The
// composite index on (user_id, created_at) backs the newest-first list query.
type EntryModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index:idx_entries_user_created,priority:1;not null"`
	Title      string     `gorm:"size:255;not null"`
	Content    string     `gorm:"type:text;not null"`
	MoodRating *int
	CreatedAt  time.Time `gorm:"index:idx_entries_user_created,priority:2;not null"`
	EditedAt   *time.Time `gorm:"column:updated_at"`

	// Tags holds the normalized tag set as a JSON array. The set is small
	// and always read with its entry, so a serialized column beats a join
	// table here.
	Tags string `gorm:"type:text;not null;default:'[]'"`
}

// TableName fixes the table name regardless of GORM pluralization settings.
func (EntryModel) TableName() string { return "entries" }

func toEntryEntity(m *EntryModel) (*entity.Entry, error) {
	e := &entity.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.MoodRating != nil {
		v := *m.MoodRating
		e.MoodRating = &v
	}
	if m.EditedAt != nil {
		v := *m.EditedAt
		e.UpdatedAt = &v
	}
	if m.Tags != "" && m.Tags != "[]" {
		if err := json.Unmarshal([]byte(m.Tags), &e.Tags); err != nil {
			return nil, fmt.Errorf("corrupt tag column on entry %d: %w", m.ID, err)
		}
	}
	return e, nil
}

func fromEntryEntity(e *entity.Entry) (*EntryModel, error) {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tags: %w", err)
	}

	m := &EntryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		Tags:      string(raw),
	}
	if e.MoodRating != nil {
		v := *e.MoodRating
		m.MoodRating = &v
	}
	if e.UpdatedAt != nil {
		v := *e.UpdatedAt
		m.EditedAt = &v
	}
	return m, nil
}
