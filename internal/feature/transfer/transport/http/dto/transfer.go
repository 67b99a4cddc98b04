// Package dto defines the HTTP response shapes for import/export.
package dto

import "moodjournal/internal/feature/transfer/usecase"

// Import status values. "partial" means some records failed; partial results
// are never reported as a hard error.
const (
	ImportStatusOK      = "ok"
	ImportStatusPartial = "partial"
)

// ImportResponse is the body of an import endpoint response.
type ImportResponse struct {
	Status     string   `json:"status"`
	Successful int      `json:"successful"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// NewImportResponse maps an ImportResult to its wire form.
func NewImportResponse(res usecase.ImportResult) ImportResponse {
	status := ImportStatusOK
	if res.Failed > 0 {
		status = ImportStatusPartial
	}
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return ImportResponse{
		Status:     status,
		Successful: res.Successful,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		Errors:     errs,
	}
}

// ProgressFrame is one websocket message during a streaming import.
// Type is "progress" for incremental events and "result" for the final frame.
type ProgressFrame struct {
	Type              string  `json:"type"`
	JobID             string  `json:"jobId"`
	TotalLines        int     `json:"totalLines,omitempty"`
	ProcessedLines    int     `json:"processedLines,omitempty"`
	SuccessfulImports int     `json:"successfulImports,omitempty"`
	FailedImports     int     `json:"failedImports,omitempty"`
	SuccessRate       float64 `json:"successRate,omitempty"`
	IsComplete        bool    `json:"isComplete,omitempty"`

	Result *ImportResponse `json:"result,omitempty"`
}
