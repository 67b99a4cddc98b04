// Package handler provides the HTTP handlers for import and export.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"moodjournal/internal/api"
	"moodjournal/internal/feature/transfer/transport/http/dto"
	"moodjournal/internal/feature/transfer/usecase"
)

// csvAttachmentName is the filename hint sent with CSV downloads.
const csvAttachmentName = "journal_entries.csv"

// ExportUsecase defines the export operations the handler depends on.
type ExportUsecase interface {
	ExportJSON(ctx context.Context, userID uint) (string, error)
	ExportCSV(ctx context.Context, userID uint) (string, error)
}

// ImportUsecase defines the import operations the handler depends on.
type ImportUsecase interface {
	ImportCSV(ctx context.Context, userID uint, body string) usecase.ImportResult
	ImportJSON(ctx context.Context, userID uint, body string) usecase.ImportResult
	ImportCSVFlow(ctx context.Context, userID uint, body string) (<-chan usecase.ImportProgress, <-chan usecase.ImportResult)
}

// TransferHandler handles HTTP requests for bulk import and export.
type TransferHandler struct {
	exporter ExportUsecase
	importer ImportUsecase
	upgrader websocket.Upgrader
}

// NewTransferHandler creates a TransferHandler with the injected usecases.
func NewTransferHandler(exporter ExportUsecase, importer ImportUsecase) *TransferHandler {
	return &TransferHandler{
		exporter: exporter,
		importer: importer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ExportJSON handles GET /users/:id/export/json.
func (h *TransferHandler) ExportJSON(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.exporter.ExportJSON(c.Request.Context(), userID)
	if err != nil {
		slog.Error("json export failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "export failed"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

// ExportCSV handles GET /users/:id/export/csv. The response carries an
// attachment filename hint so browsers download rather than render it.
func (h *TransferHandler) ExportCSV(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.exporter.ExportCSV(c.Request.Context(), userID)
	if err != nil {
		slog.Error("csv export failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "export failed"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+csvAttachmentName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(doc))
}

// ImportCSV handles POST /users/:id/import/csv. The request body is the raw
// CSV document. 200 when every record imported or was skipped, 207 when some
// records failed; partial failure is never a hard error.
func (h *TransferHandler) ImportCSV(c *gin.Context) {
	h.runImport(c, h.importer.ImportCSV)
}

// ImportJSON handles POST /users/:id/import/json.
func (h *TransferHandler) ImportJSON(c *gin.Context) {
	h.runImport(c, h.importer.ImportJSON)
}

func (h *TransferHandler) runImport(c *gin.Context, run func(ctx context.Context, userID uint, body string) usecase.ImportResult) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Warn("import body read failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not read request body"})
		return
	}

	res := run(c.Request.Context(), userID, string(body))
	resp := dto.NewImportResponse(res)

	status := http.StatusOK
	if res.Failed > 0 {
		status = http.StatusMultiStatus
	}
	slog.Info("import finished",
		"user_id", userID,
		"successful", res.Successful,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	c.JSON(status, resp)
}

// ImportWS handles GET /users/:id/import/ws. The client sends one text
// message containing the CSV document; the server streams one progress frame
// per record and a final result frame, all tagged with a job ID, then closes.
func (h *TransferHandler) ImportWS(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "user_id", userID)
		return
	}
	defer conn.Close()

	_, payload, err := conn.ReadMessage()
	if err != nil {
		slog.Warn("websocket read failed", "error", err, "user_id", userID)
		return
	}

	jobID := uuid.NewString()
	slog.Info("streaming import started", "job_id", jobID, "user_id", userID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	progressCh, resultCh := h.importer.ImportCSVFlow(ctx, userID, string(payload))
	for p := range progressCh {
		frame := dto.ProgressFrame{
			Type:              "progress",
			JobID:             jobID,
			TotalLines:        p.TotalLines,
			ProcessedLines:    p.ProcessedLines,
			SuccessfulImports: p.SuccessfulImports,
			FailedImports:     p.FailedImports,
			SuccessRate:       p.SuccessRate(),
			IsComplete:        p.IsComplete(),
		}
		if err := conn.WriteJSON(frame); err != nil {
			// Client went away; cancel the flow and let already
			// persisted records stand.
			slog.Warn("websocket write failed", "error", err, "job_id", jobID)
			return
		}
	}

	if res, ok := <-resultCh; ok {
		resp := dto.NewImportResponse(res)
		final := dto.ProgressFrame{Type: "result", JobID: jobID, Result: &resp}
		if err := conn.WriteJSON(final); err != nil {
			slog.Warn("websocket result write failed", "error", err, "job_id", jobID)
			return
		}
		slog.Info("streaming import finished",
			"job_id", jobID,
			"successful", res.Successful,
			"skipped", res.Skipped,
			"failed", res.Failed,
		)
	}
}

// pathID parses the :id path parameter, responding 400 itself on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}
