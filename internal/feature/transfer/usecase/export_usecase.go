// Package usecase implements the import/export engines for journal entries.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"moodjournal/internal/feature/entries/domain/entity"
	"moodjournal/internal/feature/transfer/codec"
)

// CSVHeader is the fixed first line of an exported CSV document. Note that
// the export shape differs from the codec's 6-field round-trip shape; the two
// formats serve different purposes and must not be confused.
const CSVHeader = "ID,Title,Content,MoodRating,CreatedAt,UpdatedAt"

// EntryLister is the slice of the entry repository the exporter needs.
type EntryLister interface {
	// FindAllByUser returns the user's entries ordered by CreatedAt descending.
	FindAllByUser(ctx context.Context, userID uint) ([]entity.Entry, error)
}

// ExportedEntry is one record inside the JSON envelope. The owning user is
// implied by the envelope, so userId is deliberately omitted per record.
// Field order is a stable wire contract consumed by multiple clients.
type ExportedEntry struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	MoodRating *int    `json:"moodRating"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  *string `json:"updatedAt"`
}

// ExportEnvelope is the top-level JSON document wrapping an exported entry
// list. Byte-compatible across implementations given a fixed clock.
type ExportEnvelope struct {
	ExportDate   string          `json:"exportDate"`
	UserID       uint            `json:"userId"`
	TotalEntries int             `json:"totalEntries"`
	Entries      []ExportedEntry `json:"entries"`
}

// Exporter produces complete external representations of a user's entries.
// Export trusts stored data and performs no validation.
type Exporter struct {
	entries EntryLister
	now     func() time.Time
}

// NewExporter creates an Exporter over the given repository slice.
func NewExporter(entries EntryLister) *Exporter {
	return &Exporter{
		entries: entries,
		now:     time.Now,
	}
}

// ExportJSON serializes all of the user's entries into the envelope format,
// preserving the repository's newest-first order. Serialization is
// deterministic: identical input and clock produce identical bytes.
func (ex *Exporter) ExportJSON(ctx context.Context, userID uint) (string, error) {
	entries, err := ex.entries.FindAllByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load entries for export: %w", err)
	}

	env := ExportEnvelope{
		ExportDate:   ex.now().UTC().Format(time.RFC3339),
		UserID:       userID,
		TotalEntries: len(entries),
		Entries:      make([]ExportedEntry, 0, len(entries)),
	}
	for i := range entries {
		env.Entries = append(env.Entries, toExportedEntry(&entries[i]))
	}

	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to serialize export envelope: %w", err)
	}
	return string(out), nil
}

// ExportCSV serializes all of the user's entries as CSV, one sanitized row
// per entry under the fixed header. A user with zero entries exports as the
// header line alone.
func (ex *Exporter) ExportCSV(ctx context.Context, userID uint) (string, error) {
	entries, err := ex.entries.FindAllByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load entries for export: %w", err)
	}

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for i := range entries {
		e := &entries[i]

		mood := ""
		if e.MoodRating != nil {
			mood = strconv.Itoa(*e.MoodRating)
		}
		updated := ""
		if e.UpdatedAt != nil {
			updated = e.UpdatedAt.UTC().Format(time.RFC3339)
		}

		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			codec.Sanitize(e.Title),
			codec.Sanitize(e.Content),
			mood,
			e.CreatedAt.UTC().Format(time.RFC3339),
			updated,
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func toExportedEntry(e *entity.Entry) ExportedEntry {
	out := ExportedEntry{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.MoodRating != nil {
		v := *e.MoodRating
		out.MoodRating = &v
	}
	if e.UpdatedAt != nil {
		s := e.UpdatedAt.UTC().Format(time.RFC3339)
		out.UpdatedAt = &s
	}
	return out
}
