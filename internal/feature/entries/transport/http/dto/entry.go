// Package dto defines the HTTP request/response shapes for the entries feature.
package dto

import (
	"time"

	"moodjournal/internal/feature/entries/domain/entity"
)

// CreateEntryRequest is the POST /users/:id/entries payload.
type CreateEntryRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	MoodRating *int     `json:"moodRating"`
	Tags       []string `json:"tags"`
}

// UpdateEntryRequest is the PUT /entries/:id payload.
type UpdateEntryRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	MoodRating *int     `json:"moodRating"`
	Tags       []string `json:"tags"`
}

// EntryResponse is the external representation of an entry.
type EntryResponse struct {
	ID         uint     `json:"id"`
	UserID     uint     `json:"userId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	MoodRating *int     `json:"moodRating"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  *string  `json:"updatedAt"`
	Tags       []string `json:"tags"`
	WordCount  int      `json:"wordCount"`
	IsEdited   bool     `json:"isEdited"`
}

// NewEntryResponse maps a domain entry to its wire form.
func NewEntryResponse(e *entity.Entry) EntryResponse {
	out := EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		Tags:      e.Tags,
		WordCount: e.WordCount(),
		IsEdited:  e.IsEdited(),
	}
	if e.MoodRating != nil {
		v := *e.MoodRating
		out.MoodRating = &v
	}
	if e.UpdatedAt != nil {
		s := e.UpdatedAt.UTC().Format(time.RFC3339)
		out.UpdatedAt = &s
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

// NewEntryListResponse maps a slice of entries, preserving order.
func NewEntryListResponse(entries []entity.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewEntryResponse(&entries[i]))
	}
	return out
}
