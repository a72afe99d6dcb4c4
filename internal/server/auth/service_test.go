package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/jwt"
	"github.com/iudanet/bookshelf/internal/server/storage"
)

// mockUserStorage is an in-memory mock implementation of UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // userID -> User
	createError error
	getError    error
	addError    error
	removeError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{
		users: make(map[string]*models.User),
	}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
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
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) AddSavedBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	if m.addError != nil {
		return nil, m.addError
	}
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
	if m.removeError != nil {
		return nil, m.removeError
	}
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

func newTestService(users storage.UserStorage) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwt.NewService([]byte("test-secret"), time.Hour)
	return NewService(logger, users, tokens)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		wantError error
		name      string
		username  string
		email     string
		password  string
	}{
		{
			name:     "valid registration",
			username: "ada",
			email:    "ada@example.com",
			password: "secret123",
		},
		{
			name:      "username too short",
			username:  "ab",
			email:     "ab@example.com",
			password:  "secret123",
			wantError: ErrInvalidInput,
		},
		{
			name:      "username with invalid characters",
			username:  "ada lovelace",
			email:     "ada2@example.com",
			password:  "secret123",
			wantError: ErrInvalidInput,
		},
		{
			name:      "invalid email",
			username:  "grace",
			email:     "not-an-email",
			password:  "secret123",
			wantError: ErrInvalidInput,
		},
		{
			name:      "password too short",
			username:  "grace",
			email:     "grace@example.com",
			password:  "short",
			wantError: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockUserStorage())

			user, token, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEmpty(t, token)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.email, user.Email)
			// Password hash не должен попадать наружу
			assert.Empty(t, user.PasswordHash)
			assert.NotNil(t, user.SavedBooks)
			assert.Empty(t, user.SavedBooks)
		})
	}
}

func TestService_Register_DuplicateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	_, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "ada", "other@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, _, err = svc.Register(ctx, "other", "ada@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	_, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	_, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	// Неверный пароль и несуществующий email дают одну и ту же ошибку
	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	wrongPasswordErr := err
	assert.ErrorIs(t, wrongPasswordErr, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	unknownEmailErr := err
	assert.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)

	assert.Equal(t, wrongPasswordErr.Error(), unknownEmailErr.Error())
}

func TestService_Me(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Me(ctx, &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Me_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	_, err := svc.Me(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_Me_UserDeleted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	// Токен валидный, но пользователя уже нет в storage
	_, err := svc.Me(ctx, &Identity{ID: "gone", Username: "gone", Email: "gone@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SaveBook(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	ident := &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"}

	user, err := svc.SaveBook(ctx, ident, models.SavedBook{
		BookID:  "OL1M",
		Title:   "The Hobbit",
		Authors: []string{"J.R.R. Tolkien"},
	})
	require.NoError(t, err)
	require.Len(t, user.SavedBooks, 1)
	assert.Equal(t, "OL1M", user.SavedBooks[0].BookID)

	// Порядок добавления сохраняется
	user, err = svc.SaveBook(ctx, ident, models.SavedBook{
		BookID: "OL2M",
		Title:  "Dune",
	})
	require.NoError(t, err)
	require.Len(t, user.SavedBooks, 2)
	assert.Equal(t, "OL1M", user.SavedBooks[0].BookID)
	assert.Equal(t, "OL2M", user.SavedBooks[1].BookID)
}

func TestService_SaveBook_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	ident := &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"}

	book := models.SavedBook{BookID: "OL1M", Title: "The Hobbit"}

	_, err = svc.SaveBook(ctx, ident, book)
	require.NoError(t, err)

	// Повторное сохранение того же bookId - no-op без ошибки
	user, err := svc.SaveBook(ctx, ident, book)
	require.NoError(t, err)
	assert.Len(t, user.SavedBooks, 1)
}

func TestService_SaveBook_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	ident := &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"}

	_, err = svc.SaveBook(ctx, ident, models.SavedBook{Title: "No ID"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveBook(ctx, ident, models.SavedBook{BookID: "OL1M"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveBook(ctx, nil, models.SavedBook{BookID: "OL1M", Title: "The Hobbit"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_RemoveBook(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMockUserStorage())

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	ident := &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"}

	_, err = svc.SaveBook(ctx, ident, models.SavedBook{BookID: "OL1M", Title: "The Hobbit"})
	require.NoError(t, err)

	user, err := svc.RemoveBook(ctx, ident, "OL1M")
	require.NoError(t, err)
	assert.Empty(t, user.SavedBooks)

	// Удаление несохраненной книги - no-op
	user, err = svc.RemoveBook(ctx, ident, "OL1M")
	require.NoError(t, err)
	assert.Empty(t, user.SavedBooks)

	_, err = svc.RemoveBook(ctx, ident, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RemoveBook(ctx, nil, "OL1M")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mock := newMockUserStorage()
	svc := newTestService(mock)

	registered, _, err := svc.Register(ctx, "ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	ident := &Identity{ID: registered.ID, Username: "ada", Email: "ada@example.com"}

	// Инфраструктурные ошибки storage не просачиваются наружу
	mock.addError = errors.New("disk failure")
	_, err = svc.SaveBook(ctx, ident, models.SavedBook{BookID: "OL1M", Title: "The Hobbit"})
	assert.ErrorIs(t, err, ErrOperationFailed)

	mock.removeError = errors.New("disk failure")
	_, err = svc.RemoveBook(ctx, ident, "OL1M")
	assert.ErrorIs(t, err, ErrOperationFailed)

	mock.getError = errors.New("disk failure")
	_, err = svc.Me(ctx, ident)
	assert.ErrorIs(t, err, ErrOperationFailed)
}
