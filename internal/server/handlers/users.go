package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/pkg/api"
)

// UsersHandler обрабатывает запросы текущего пользователя и его книг.
// Identity берется из контекста запроса (устанавливается IdentityMiddleware);
// ее отсутствие сервис превращает в ErrUnauthenticated.
type UsersHandler struct {
	logger  *slog.Logger
	service *auth.Service
}

// NewUsersHandler создает новый handler для пользователя и его книг
func NewUsersHandler(logger *slog.Logger, service *auth.Service) *UsersHandler {
	return &UsersHandler{
		logger:  logger,
		service: service,
	}
}

// Me обрабатывает GET /api/v1/users/me
// Возвращает текущего пользователя с сохраненными книгами
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ident, _ := auth.IdentityFromContext(ctx)

	user, err := h.service.Me(ctx, ident)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.UserResponse{User: toAPIUser(user)}, http.StatusOK)
}

// SaveBook обрабатывает POST /api/v1/users/me/books
// Идемпотентно добавляет книгу в savedBooks, возвращает обновленного пользователя
func (h *UsersHandler) SaveBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SaveBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode save book request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	ident, _ := auth.IdentityFromContext(ctx)

	book := models.SavedBook{
		BookID:      req.BookID,
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
	}

	user, err := h.service.SaveBook(ctx, ident, book)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.UserResponse{User: toAPIUser(user)}, http.StatusOK)
}

// RemoveBook обрабатывает DELETE /api/v1/users/me/books/{bookId}
// Идемпотентно удаляет книгу, возвращает обновленного пользователя
func (h *UsersHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID := r.PathValue("bookId")

	ident, _ := auth.IdentityFromContext(ctx)

	user, err := h.service.RemoveBook(ctx, ident, bookID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.UserResponse{User: toAPIUser(user)}, http.StatusOK)
}
