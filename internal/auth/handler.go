package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
	r.Post("/forgot-password", h.handleForgotPassword)
	r.Post("/reset-password", h.handleResetPassword)
	r.Get("/validate-reset-token/{token}", h.handleValidateResetToken)
	r.Post("/refresh", h.handleRefresh)
	r.Post("/logout", h.handleLogout)
}

type loginPayload struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.service.Login(r.Context(), models.LoginRequest{
		Email:      payload.Email,
		Password:   payload.Password,
		RememberMe: payload.RememberMe,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Message(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

type registerPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.service.Register(r.Context(), models.RegisterRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httpx.Message(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("register", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload models.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &payload); err != nil || strings.TrimSpace(payload.Email) == "" {
		httpx.Message(w, http.StatusBadRequest, "email is required")
		return
	}
	// The response is identical whether the email exists or the mail
	// enqueue failed, so the endpoint leaks nothing.
	if err := h.service.ForgotPassword(r.Context(), payload.Email); err != nil {
		h.logger.Warn("forgot password", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type resetPayload struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload resetPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validator.Struct(payload); err != nil {
		httpx.Message(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := h.service.ResetPassword(r.Context(), payload.Token, payload.Password); err != nil {
		if errors.Is(err, ErrResetInvalid) {
			httpx.Message(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("reset password", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleValidateResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	httpx.JSON(w, http.StatusOK, models.ResetTokenValidity{
		Valid: h.service.ValidateResetToken(r.Context(), token),
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload models.RefreshRequest
	if err := httpx.DecodeJSON(r, &payload); err != nil || payload.RefreshToken == "" {
		httpx.Message(w, http.StatusBadRequest, "refresh token is required")
		return
	}
	token, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		httpx.Message(w, http.StatusUnauthorized, ErrRefreshExpired.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, models.RefreshResponse{Token: token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), BearerToken(r)); err != nil {
		h.logger.Warn("logout", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

// validationMessage flattens the first validator error into a short
// human-readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "email":
			return field + " must be a valid email address"
		case "min":
			return field + " is too short"
		}
		return field + " is invalid"
	}
	return "validation failed"
}
