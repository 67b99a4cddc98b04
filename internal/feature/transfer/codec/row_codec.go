// Package codec maps journal entries to and from flat 6-field rows, the
// positional format used for CSV round trips:
//
//	id, userId, createdAt, title, content, moodRating
//
// Decoding is strict: wrong field count, unparseable timestamps and
// non-numeric or out-of-range moods all fail with ErrFormat. Encoding
// sanitizes title and content so the row survives a comma-delimited format.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"moodjournal/internal/feature/entries/domain/entity"
)

// FieldCount is the exact number of fields in a row.
const FieldCount = 6

// ErrFormat indicates a malformed external record. In batch imports it is
// isolated to the offending row and never aborts the batch.
var ErrFormat = errors.New("format error")

// timestampLayouts are the accepted ISO-8601 shapes, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DecodeRow converts one row into an entry owned by targetUserID. The row's
// own userId field is untrusted and ignored; the caller decides ownership.
func DecodeRow(fields []string, targetUserID uint) (entity.Entry, error) {
	if len(fields) != FieldCount {
		return entity.Entry{}, fmt.Errorf("%w: expected %d fields, got %d", ErrFormat, FieldCount, len(fields))
	}

	var id uint64
	if raw := strings.TrimSpace(fields[0]); raw != "" {
		var err error
		id, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return entity.Entry{}, fmt.Errorf("%w: non-numeric id %q", ErrFormat, raw)
		}
	}

	createdAt, err := ParseTimestamp(strings.TrimSpace(fields[2]))
	if err != nil {
		return entity.Entry{}, fmt.Errorf("%w: unparseable createdAt %q", ErrFormat, fields[2])
	}

	title := strings.TrimSpace(fields[3])
	if title == "" {
		return entity.Entry{}, fmt.Errorf("%w: blank title", ErrFormat)
	}

	var mood *int
	if raw := strings.TrimSpace(fields[5]); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return entity.Entry{}, fmt.Errorf("%w: non-numeric mood rating %q", ErrFormat, raw)
		}
		if v < entity.MoodMin || v > entity.MoodMax {
			return entity.Entry{}, fmt.Errorf("%w: mood rating %d outside [%d,%d]", ErrFormat, v, entity.MoodMin, entity.MoodMax)
		}
		mood = &v
	}

	return entity.Entry{
		ID:         uint(id),
		UserID:     targetUserID,
		Title:      title,
		Content:    fields[4],
		MoodRating: mood,
		CreatedAt:  createdAt,
	}, nil
}

// EncodeRow converts an entry into its 6-field row. Title and content pass
// through Sanitize so the result is safe for a comma-delimited format; an
// absent mood encodes as the empty string.
func EncodeRow(e entity.Entry) []string {
	mood := ""
	if e.MoodRating != nil {
		mood = strconv.Itoa(*e.MoodRating)
	}
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		strconv.FormatUint(uint64(e.UserID), 10),
		e.CreatedAt.UTC().Format(time.RFC3339),
		Sanitize(e.Title),
		Sanitize(e.Content),
		mood,
	}
}

// Sanitize strips commas, replaces newlines and carriage returns with spaces
// and trims the result. Lossy for those characters by design; everything else
// round-trips.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the accepted layouts.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
