// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moodjournal/internal/api"
	"moodjournal/internal/feature/auth/domain"
	"moodjournal/internal/feature/auth/domain/entity"
	"moodjournal/internal/feature/auth/transport/http/dto"
	"moodjournal/internal/shared/validate"
)

// AuthUsecase defines the account operations the handler depends on.
// Following Go convention the interface is defined by the consumer (handler).
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Activate(ctx context.Context, id uint) (*entity.User, error)
	Deactivate(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler handles HTTP requests for registration, login and account
// lifecycle.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler with the injected usecase.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /users.
// - 400 with the full violation list on validation failure
// - 409 on duplicate username/email
// - 201 with the user record on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Errors: verr.Messages})
		case errors.Is(err, domain.ErrUsernameAlreadyExists),
			errors.Is(err, domain.ErrEmailAlreadyExists),
			errors.Is(err, domain.ErrUserConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed"})
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /login.
// The real failure cause is logged, never returned, to avoid user enumeration.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Activate handles POST /users/:id/activate.
func (h *AuthHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate handles POST /users/:id/deactivate.
func (h *AuthHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AuthHandler) setActive(c *gin.Context, active bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}

	var user *entity.User
	if active {
		user, err = h.auth.Activate(c.Request.Context(), uint(id))
	} else {
		user, err = h.auth.Deactivate(c.Request.Context(), uint(id))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("activation toggle failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "update failed"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
