// Package handler provides the HTTP handlers for the entries feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moodjournal/internal/api"
	"moodjournal/internal/feature/entries/domain"
	"moodjournal/internal/feature/entries/domain/entity"
	"moodjournal/internal/feature/entries/transport/http/dto"
	"moodjournal/internal/shared/validate"
)

// EntriesUsecase defines the entry operations the handler depends on.
// Following Go convention the interface is defined by the consumer (handler).
type EntriesUsecase interface {
	CreateEntry(ctx context.Context, userID uint, title, content string, moodRating *int, tags []string) (*entity.Entry, error)
	ListEntries(ctx context.Context, userID uint) ([]entity.Entry, error)
	GetEntry(ctx context.Context, id uint) (*entity.Entry, error)
	UpdateEntry(ctx context.Context, id uint, title, content string, moodRating *int, tags []string) (*entity.Entry, error)
	DeleteEntry(ctx context.Context, id uint) (bool, error)
}

// EntryHandler handles HTTP requests for entry CRUD.
type EntryHandler struct {
	entries EntriesUsecase
}

// NewEntryHandler creates an EntryHandler with the injected usecase.
func NewEntryHandler(entries EntriesUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// Create handles POST /users/:id/entries.
// - 400 with the violation list on validation failure
// - 404 when the owning user does not exist
// - 201 with the entry on success
func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create entry bind failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	e, err := h.entries.CreateEntry(c.Request.Context(), userID, req.Title, req.Content, req.MoodRating, req.Tags)
	if err != nil {
		h.writeError(c, err, "create entry failed")
		return
	}

	slog.Info("entry created", "entry_id", e.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewEntryResponse(e))
}

// List handles GET /users/:id/entries. Entries come back newest first.
func (h *EntryHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.entries.ListEntries(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list entries failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load entries"})
		return
	}

	c.JSON(http.StatusOK, dto.NewEntryListResponse(entries))
}

// Get handles GET /entries/:id.
func (h *EntryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	e, err := h.entries.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "get entry failed")
		return
	}

	c.JSON(http.StatusOK, dto.NewEntryResponse(e))
}

// Update handles PUT /entries/:id.
func (h *EntryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update entry bind failed", "error", err, "entry_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	e, err := h.entries.UpdateEntry(c.Request.Context(), id, req.Title, req.Content, req.MoodRating, req.Tags)
	if err != nil {
		h.writeError(c, err, "update entry failed")
		return
	}

	slog.Info("entry updated", "entry_id", e.ID)
	c.JSON(http.StatusOK, dto.NewEntryResponse(e))
}

// Delete handles DELETE /entries/:id.
// 204 when a row was removed, 404 when it was already absent.
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	existed, err := h.entries.DeleteEntry(c.Request.Context(), id)
	if err != nil {
		slog.Error("delete entry failed", "error", err, "entry_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "delete failed"})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "entry not found"})
		return
	}

	slog.Info("entry deleted", "entry_id", id)
	c.Status(http.StatusNoContent)
}

// writeError maps usecase errors onto HTTP statuses.
func (h *EntryHandler) writeError(c *gin.Context, err error, logMsg string) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Errors: verr.Messages})
	case errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "entry not found"})
	case errors.Is(err, domain.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// pathID parses a numeric path parameter, responding 400 itself on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
