package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendServiceError маппит error kind сервиса на HTTP статус
func sendServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials):
		sendError(logger, w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, auth.ErrAlreadyExists):
		sendError(logger, w, err.Error(), http.StatusConflict)
	case errors.Is(err, auth.ErrInvalidInput):
		sendError(logger, w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrNotFound):
		sendError(logger, w, err.Error(), http.StatusNotFound)
	default:
		// Внутренняя причина уже залогирована сервисом, наружу не отдается
		sendError(logger, w, "internal server error", http.StatusInternalServerError)
	}
}

// toAPIUser конвертирует модель пользователя в API представление
func toAPIUser(user *models.User) api.User {
	books := make([]api.Book, 0, len(user.SavedBooks))
	for _, b := range user.SavedBooks {
		books = append(books, toAPIBook(b))
	}

	return api.User{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		SavedBooks: books,
		BookCount:  user.BookCount(),
	}
}

// toAPIBook конвертирует модель книги в API представление
func toAPIBook(book models.SavedBook) api.Book {
	return api.Book{
		BookID:      book.BookID,
		Title:       book.Title,
		Authors:     book.Authors,
		Description: book.Description,
		Image:       book.Image,
		Link:        book.Link,
	}
}
