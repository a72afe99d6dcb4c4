package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger  *slog.Logger
	service *auth.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
	}
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрация нового пользователя, возвращает токен и пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	resp := api.AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.service.TokenTTL().Seconds()),
		User:      toAPIUser(user),
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
// Аутентификация пользователя, возвращает токен и пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	resp := api.AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.service.TokenTTL().Seconds()),
		User:      toAPIUser(user),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
