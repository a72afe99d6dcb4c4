package storage

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound indicates there is no stored session (not logged in)
var ErrSessionNotFound = errors.New("session not found")

// Session содержит локальное состояние клиента между запусками:
// access token и кэш идентификаторов сохраненных книг
type Session struct {
	Token        string    `json:"token"`          // JWT access token
	UserID       string    `json:"user_id"`        // UUID пользователя
	Username     string    `json:"username"`       // username пользователя
	Email        string    `json:"email"`          // email пользователя
	ExpiresAt    time.Time `json:"expires_at"`     // время истечения токена
	SavedBookIDs []string  `json:"saved_book_ids"` // кэш bookId сохраненных книг
}

// Valid проверяет, что сессия еще действительна
func (s *Session) Valid() bool {
	return s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// HasBook проверяет наличие bookId в локальном кэше
func (s *Session) HasBook(bookID string) bool {
	for _, id := range s.SavedBookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

// SessionStore defines interface for client session persistence
type SessionStore interface {
	// SaveSession stores the session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if not logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error

	// SaveSearchResults caches the last search results for later save commands
	SaveSearchResults(ctx context.Context, books []SearchResult) error

	// GetSearchResult looks up a cached search result by bookId
	// Returns ErrSessionNotFound if the book is not in the cache
	GetSearchResult(ctx context.Context, bookID string) (*SearchResult, error)

	// Close releases the underlying storage resources
	Close() error
}

// SearchResult представляет закэшированный результат поиска
type SearchResult struct {
	BookID      string   `json:"bookId"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
}
