package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/pkg/api"
)

// defaultSearchLimit количество результатов поиска по умолчанию
const defaultSearchLimit = 10

// BookSearcher определяет интерфейс поиска книг во внешнем каталоге
type BookSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.SavedBook, error)
}

// BooksHandler обрабатывает поиск книг (публичный, прокси к внешнему каталогу)
type BooksHandler struct {
	logger   *slog.Logger
	searcher BookSearcher
}

// NewBooksHandler создает новый handler для поиска книг
func NewBooksHandler(logger *slog.Logger, searcher BookSearcher) *BooksHandler {
	return &BooksHandler{
		logger:   logger,
		searcher: searcher,
	}
}

// Search обрабатывает GET /api/v1/books/search?q=query&limit=10
func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	if query == "" {
		sendError(h.logger, w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	limit := defaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			sendError(h.logger, w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	found, err := h.searcher.Search(ctx, query, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "book search failed",
			slog.String("query", query),
			slog.Any("error", err))
		sendError(h.logger, w, "book search failed", http.StatusBadGateway)
		return
	}

	books := make([]api.Book, 0, len(found))
	for _, b := range found {
		books = append(books, toAPIBook(b))
	}

	sendJSON(h.logger, w, api.SearchResponse{Books: books, Total: len(books)}, http.StatusOK)
}
