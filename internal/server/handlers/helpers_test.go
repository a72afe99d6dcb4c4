package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/internal/server/jwt"
	"github.com/iudanet/bookshelf/internal/server/storage"
)

// mockUserStorage is an in-memory mock implementation of UserStorage for testing
type mockUserStorage struct {
	users map[string]*models.User // userID -> User
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{
		users: make(map[string]*models.User),
	}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) AddSavedBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	if !user.HasBook(book.BookID) {
		user.SavedBooks = append(user.SavedBooks, book)
	}
	return user, nil
}

func (m *mockUserStorage) RemoveSavedBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	books := make([]models.SavedBook, 0, len(user.SavedBooks))
	for _, book := range user.SavedBooks {
		if book.BookID != bookID {
			books = append(books, book)
		}
	}
	user.SavedBooks = books
	return user, nil
}

func (m *mockUserStorage) Close() error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *auth.Service {
	t.Helper()
	tokens := jwt.NewService([]byte("test-secret"), time.Hour)
	return auth.NewService(testLogger(), newMockUserStorage(), tokens)
}

// registerTestUser регистрирует пользователя и возвращает его identity
func registerTestUser(t *testing.T, svc *auth.Service) *auth.Identity {
	t.Helper()
	ctx := context.Background()
	user, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	return &auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
