// Package usecase implements the business logic for journal entries.
package usecase

import (
	"context"
	"sort"
	"time"

	"moodjournal/internal/feature/entries/domain/entity"
	"moodjournal/internal/shared/validate"
)

// EntryRepository abstracts the persistence layer for entries.
// Following Go convention the interface is defined by the consumer (usecase).
type EntryRepository interface {
	// Create persists a new entry and assigns its identity. Returns
	// domain.ErrOwnerNotFound when the referenced user does not exist.
	Create(ctx context.Context, e *entity.Entry) error

	// FindAllByUser returns the user's entries ordered by CreatedAt
	// descending. The ordering is part of the contract: clients render
	// lists newest-first.
	FindAllByUser(ctx context.Context, userID uint) ([]entity.Entry, error)

	// FindByID returns the entry with the given ID, or domain.ErrEntryNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Entry, error)

	// Update overwrites the mutable fields (title, content, mood, tags)
	// of the stored entry and refreshes its UpdatedAt. Returns
	// domain.ErrEntryNotFound when the entry does not exist.
	Update(ctx context.Context, e *entity.Entry) (*entity.Entry, error)

	// Delete removes the entry and reports whether a row existed.
	// Idempotent: deleting twice never errors, the second call returns false.
	Delete(ctx context.Context, id uint) (bool, error)
}

// EntriesUsecase implements CRUD over journal entries. All user-supplied
// input is validated here before it reaches the domain, so direct-call
// contract violations never surface through HTTP.
type EntriesUsecase struct {
	entries EntryRepository
	now     func() time.Time
}

// NewEntriesUsecase creates an EntriesUsecase over the given repository.
func NewEntriesUsecase(entries EntryRepository) *EntriesUsecase {
	return &EntriesUsecase{
		entries: entries,
		now:     time.Now,
	}
}

// CreateEntry validates the payload and persists a new entry for the user.
// Tags are normalized into a set before storage; blank tags are dropped.
func (u *EntriesUsecase) CreateEntry(ctx context.Context, userID uint, title, content string, moodRating *int, tags []string) (*entity.Entry, error) {
	if msgs := validate.EntryPayload(title, content, moodRating); len(msgs) > 0 {
		return nil, &validate.Error{Messages: msgs}
	}

	e := entity.Entry{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: u.now(),
	}
	if moodRating != nil {
		v := *moodRating
		e.MoodRating = &v
	}
	for _, tag := range tags {
		if entity.NormalizeTag(tag) == "" {
			continue
		}
		// AddTag keeps the set sorted and duplicate-free; the edit
		// timestamp it sets is discarded because this is creation.
		withTag, err := e.AddTag(tag, u.now())
		if err != nil {
			return nil, err
		}
		e = withTag
	}
	e.UpdatedAt = nil

	if err := u.entries.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEntries returns all entries for the user, newest first.
func (u *EntriesUsecase) ListEntries(ctx context.Context, userID uint) ([]entity.Entry, error) {
	return u.entries.FindAllByUser(ctx, userID)
}

// GetEntry returns a single entry by ID.
func (u *EntriesUsecase) GetEntry(ctx context.Context, id uint) (*entity.Entry, error) {
	return u.entries.FindByID(ctx, id)
}

// UpdateEntry validates the payload and overwrites the entry's mutable
// fields. The repository refreshes UpdatedAt as part of the write.
func (u *EntriesUsecase) UpdateEntry(ctx context.Context, id uint, title, content string, moodRating *int, tags []string) (*entity.Entry, error) {
	if msgs := validate.EntryPayload(title, content, moodRating); len(msgs) > 0 {
		return nil, &validate.Error{Messages: msgs}
	}

	e := entity.Entry{
		ID:      id,
		Title:   title,
		Content: content,
	}
	if moodRating != nil {
		v := *moodRating
		e.MoodRating = &v
	}
	seen := map[string]struct{}{}
	for _, tag := range tags {
		norm := entity.NormalizeTag(tag)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		e.Tags = append(e.Tags, norm)
	}
	sort.Strings(e.Tags)

	return u.entries.Update(ctx, &e)
}

// DeleteEntry removes the entry and reports whether it existed.
func (u *EntriesUsecase) DeleteEntry(ctx context.Context, id uint) (bool, error) {
	return u.entries.Delete(ctx, id)
}
