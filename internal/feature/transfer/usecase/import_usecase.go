package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entriesdomain "moodjournal/internal/feature/entries/domain"
	"moodjournal/internal/feature/entries/domain/entity"
	"moodjournal/internal/feature/transfer/codec"
)

// EntryStore is the slice of the entry repository the importer needs.
type EntryStore interface {
	// Create persists a new entry; returns domain.ErrOwnerNotFound when
	// the target user does not exist.
	Create(ctx context.Context, e *entity.Entry) error

	// ExistsByTitle reports whether the user already has an entry with
	// this exact title.
	ExistsByTitle(ctx context.Context, userID uint, title string) (bool, error)
}

// DuplicateCheck decides whether an incoming entry duplicates a stored one.
// The default keys on the per-user title; injecting a different predicate
// changes the duplicate key without touching the import loop.
type DuplicateCheck func(ctx context.Context, userID uint, e *entity.Entry) (bool, error)

// ImportResult aggregates one import run. Counts cover every input record;
// Errors lists the per-record failure messages in encounter order.
type ImportResult struct {
	Successful int      `json:"successful"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// ImportProgress is one incremental status update from a progress-reporting
// import, emitted after each processed record.
type ImportProgress struct {
	TotalLines        int `json:"totalLines"`
	ProcessedLines    int `json:"processedLines"`
	SuccessfulImports int `json:"successfulImports"`
	FailedImports     int `json:"failedImports"`
}

// IsComplete reports whether every input record has been processed.
func (p ImportProgress) IsComplete() bool {
	return p.ProcessedLines == p.TotalLines
}

// SuccessRate returns the fraction of processed records imported
// successfully, 0.0 before any record has been processed.
func (p ImportProgress) SuccessRate() float64 {
	if p.ProcessedLines == 0 {
		return 0.0
	}
	return float64(p.SuccessfulImports) / float64(p.ProcessedLines)
}

// Importer reconciles external representations against the repository with
// per-record failure isolation: no record failure ever aborts the batch, and
// records persisted before a failure stay persisted. Re-running an import is
// safe because duplicates are skipped.
type Importer struct {
	store       EntryStore
	isDuplicate DuplicateCheck
}

// ImporterOption customizes an Importer.
type ImporterOption func(*Importer)

// WithDuplicateCheck replaces the default title-based duplicate detection.
func WithDuplicateCheck(fn DuplicateCheck) ImporterOption {
	return func(im *Importer) { im.isDuplicate = fn }
}

// NewImporter creates an Importer over the given store.
func NewImporter(store EntryStore, opts ...ImporterOption) *Importer {
	im := &Importer{store: store}
	im.isDuplicate = func(ctx context.Context, userID uint, e *entity.Entry) (bool, error) {
		return store.ExistsByTitle(ctx, userID, e.Title)
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportCSV imports a CSV body in the codec's 6-field row format. The first
// line is skipped as the header, blank lines are ignored, and remaining lines
// are processed in file order.
func (im *Importer) ImportCSV(ctx context.Context, userID uint, body string) ImportResult {
	res := ImportResult{Errors: []string{}}
	for i, line := range csvDataLines(body) {
		im.importCSVLine(ctx, userID, i+1, line, &res)
	}
	return res
}

// ImportCSVFlow is the progress-reporting variant of ImportCSV. It returns a
// channel carrying one ImportProgress per processed record and a buffered
// channel delivering the final ImportResult; both are closed when the run
// ends. Cancelling the context or abandoning the progress channel stops the
// run without corrupting repository state: records already persisted remain,
// and a re-run skips them as duplicates.
func (im *Importer) ImportCSVFlow(ctx context.Context, userID uint, body string) (<-chan ImportProgress, <-chan ImportResult) {
	progress := make(chan ImportProgress)
	result := make(chan ImportResult, 1)

	go func() {
		defer close(progress)
		defer close(result)

		res := ImportResult{Errors: []string{}}
		lines := csvDataLines(body)

		for i, line := range lines {
			if ctx.Err() != nil {
				return
			}
			im.importCSVLine(ctx, userID, i+1, line, &res)

			p := ImportProgress{
				TotalLines:        len(lines),
				ProcessedLines:    i + 1,
				SuccessfulImports: res.Successful,
				FailedImports:     res.Failed,
			}
			select {
			case progress <- p:
			case <-ctx.Done():
				return
			}
		}
		result <- res
	}()

	return progress, result
}

// ImportJSON imports a JSON body in the export envelope format. An
// unparseable envelope is the one whole-batch failure mode: it short-circuits
// to a single-record result.
func (im *Importer) ImportJSON(ctx context.Context, userID uint, body string) ImportResult {
	var env ExportEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ImportResult{
			Failed: 1,
			Errors: []string{fmt.Sprintf("Failed to parse JSON: %v", err)},
		}
	}

	res := ImportResult{Errors: []string{}}
	for i, rec := range env.Entries {
		e, err := decodeJSONRecord(rec, userID)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		im.reconcile(ctx, userID, i+1, "record", e, &res)
	}
	return res
}

// importCSVLine decodes and reconciles a single CSV data line.
func (im *Importer) importCSVLine(ctx context.Context, userID uint, lineNo int, line string, res *ImportResult) {
	e, err := codec.DecodeRow(strings.Split(line, ","), userID)
	if err != nil {
		res.Failed++
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", lineNo, err))
		return
	}
	im.reconcile(ctx, userID, lineNo, "row", e, res)
}

// reconcile runs the duplicate check and persists a decoded entry, updating
// the running counts. Failures are isolated to this record.
func (im *Importer) reconcile(ctx context.Context, userID uint, recNo int, kind string, e entity.Entry, res *ImportResult) {
	dup, err := im.isDuplicate(ctx, userID, &e)
	if err != nil {
		res.Failed++
		res.Errors = append(res.Errors, fmt.Sprintf("%s %d: duplicate check failed: %v", kind, recNo, err))
		return
	}
	if dup {
		res.Skipped++
		return
	}

	// Identity is assigned by the repository; the record's own id is part
	// of the external representation only.
	e.ID = 0
	if err := im.store.Create(ctx, &e); err != nil {
		res.Failed++
		if errors.Is(err, entriesdomain.ErrOwnerNotFound) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %d: owning user does not exist", kind, recNo))
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %d: could not be saved: %v", kind, recNo, err))
		}
		return
	}
	res.Successful++
}

// decodeJSONRecord maps one envelope record onto an entry, applying the same
// semantic checks the row codec applies to CSV rows. Content may be empty.
func decodeJSONRecord(rec ExportedEntry, targetUserID uint) (entity.Entry, error) {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		return entity.Entry{}, fmt.Errorf("%w: blank title", codec.ErrFormat)
	}

	if rec.MoodRating != nil {
		if v := *rec.MoodRating; v < entity.MoodMin || v > entity.MoodMax {
			return entity.Entry{}, fmt.Errorf("%w: mood rating %d outside [%d,%d]", codec.ErrFormat, v, entity.MoodMin, entity.MoodMax)
		}
	}

	createdAt, err := codec.ParseTimestamp(rec.CreatedAt)
	if err != nil {
		return entity.Entry{}, fmt.Errorf("%w: unparseable createdAt %q", codec.ErrFormat, rec.CreatedAt)
	}

	var updatedAt *time.Time
	if rec.UpdatedAt != nil && strings.TrimSpace(*rec.UpdatedAt) != "" {
		t, err := codec.ParseTimestamp(*rec.UpdatedAt)
		if err != nil {
			return entity.Entry{}, fmt.Errorf("%w: unparseable updatedAt %q", codec.ErrFormat, *rec.UpdatedAt)
		}
		updatedAt = &t
	}

	e := entity.Entry{
		UserID:    targetUserID,
		Title:     title,
		Content:   rec.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if rec.MoodRating != nil {
		v := *rec.MoodRating
		e.MoodRating = &v
	}
	return e, nil
}

// csvDataLines splits a CSV body into its data lines: the header line is
// skipped and blank lines are dropped.
func csvDataLines(body string) []string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
