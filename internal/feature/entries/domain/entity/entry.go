// Package entity defines the journal entry domain value and its operations.
//
// All operations are pure: they return a modified copy and never touch stored
// state. The caller supplies the clock, which keeps every mutation testable
// and keeps updatedAt semantics (nil until first edit) explicit.
package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"moodjournal/internal/feature/entries/domain"
)

// Mood rating bounds. A rating outside this range is never stored.
const (
	MoodMin = 1
	MoodMax = 10
)

// MoodBand is the coarse classification of a mood rating.
type MoodBand string

// The five bands partition the 1-10 rating range with no gaps or overlaps.
const (
	MoodVeryBad  MoodBand = "VeryBad"  // 1-2
	MoodBad      MoodBand = "Bad"      // 3-4
	MoodNeutral  MoodBand = "Neutral"  // 5-6
	MoodGood     MoodBand = "Good"     // 7-8
	MoodVeryGood MoodBand = "VeryGood" // 9-10
)

// Entry represents a single mood-journal record owned by one user.
// Values handed out by repositories are detached snapshots.
type Entry struct {
	// ID is the unique identifier, assigned at creation and immutable.
	ID uint

	// UserID references the owning user. Ownership is set at creation and
	// never transferred.
	UserID uint

	// Title is required and never blank.
	Title string

	// Content is the journal text. It may be empty but always exists.
	Content string

	// MoodRating is the optional self-reported rating, 1-10 when present.
	MoodRating *int

	// CreatedAt is set at creation and immutable.
	CreatedAt time.Time

	// UpdatedAt is nil until the first edit and refreshed on every
	// mutation thereafter.
	UpdatedAt *time.Time

	// Tags is the normalized tag set: trimmed, lower-cased, internal
	// whitespace collapsed, kept sorted with no duplicates.
	Tags []string
}

// IsEdited reports whether the entry has been modified since creation.
func (e Entry) IsEdited() bool {
	return e.UpdatedAt != nil
}

// WordCount returns the number of whitespace-delimited tokens in the content.
func (e Entry) WordCount() int {
	return len(strings.Fields(e.Content))
}

// UpdateContent returns a copy with the new content and a refreshed UpdatedAt.
func (e Entry) UpdateContent(content string, now time.Time) Entry {
	out := e.clone()
	out.Content = content
	out.UpdatedAt = &now
	return out
}

// UpdateMood returns a copy with the new rating and a refreshed UpdatedAt.
// Fails with domain.ErrInvalidArgument when the rating is outside 1-10.
func (e Entry) UpdateMood(rating int, now time.Time) (Entry, error) {
	if rating < MoodMin || rating > MoodMax {
		return Entry{}, fmt.Errorf("%w: mood rating %d outside [%d,%d]", domain.ErrInvalidArgument, rating, MoodMin, MoodMax)
	}
	out := e.clone()
	out.MoodRating = &rating
	out.UpdatedAt = &now
	return out, nil
}

// AddTag normalizes the tag and returns a copy with it added. Adding a tag
// that is already present is a no-op and does not refresh UpdatedAt.
// Fails with domain.ErrInvalidArgument when the tag is blank after trimming.
func (e Entry) AddTag(tag string, now time.Time) (Entry, error) {
	norm := NormalizeTag(tag)
	if norm == "" {
		return Entry{}, fmt.Errorf("%w: blank tag", domain.ErrInvalidArgument)
	}
	for _, t := range e.Tags {
		if t == norm {
			return e.clone(), nil
		}
	}
	out := e.clone()
	out.Tags = append(out.Tags, norm)
	sort.Strings(out.Tags)
	out.UpdatedAt = &now
	return out, nil
}

// RemoveTag normalizes the tag and returns a copy without it. Removing an
// absent tag is a no-op. Fails with domain.ErrInvalidArgument when the tag is
// blank after trimming.
func (e Entry) RemoveTag(tag string, now time.Time) (Entry, error) {
	norm := NormalizeTag(tag)
	if norm == "" {
		return Entry{}, fmt.Errorf("%w: blank tag", domain.ErrInvalidArgument)
	}
	out := e.clone()
	for i, t := range out.Tags {
		if t == norm {
			out.Tags = append(out.Tags[:i], out.Tags[i+1:]...)
			out.UpdatedAt = &now
			break
		}
	}
	return out, nil
}

// NormalizeTag trims, lower-cases and collapses internal whitespace to single
// spaces. Tags are normalized before they ever enter the set.
func NormalizeTag(tag string) string {
	return strings.Join(strings.Fields(strings.ToLower(tag)), " ")
}

// ClassifyMood maps a rating to its band. Fails with
// domain.ErrInvalidArgument when the rating is outside 1-10.
func ClassifyMood(rating int) (MoodBand, error) {
	switch {
	case rating < MoodMin || rating > MoodMax:
		return "", fmt.Errorf("%w: mood rating %d outside [%d,%d]", domain.ErrInvalidArgument, rating, MoodMin, MoodMax)
	case rating <= 2:
		return MoodVeryBad, nil
	case rating <= 4:
		return MoodBad, nil
	case rating <= 6:
		return MoodNeutral, nil
	case rating <= 8:
		return MoodGood, nil
	default:
		return MoodVeryGood, nil
	}
}

// clone copies the entry, including an independent tag slice and mood pointer,
// so modified copies never share mutable state with the original.
func (e Entry) clone() Entry {
	out := e
	if e.MoodRating != nil {
		v := *e.MoodRating
		out.MoodRating = &v
	}
	if e.UpdatedAt != nil {
		v := *e.UpdatedAt
		out.UpdatedAt = &v
	}
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	return out
}
