package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/jwt"
	"github.com/iudanet/bookshelf/internal/server/storage"
	"github.com/iudanet/bookshelf/internal/validation"
)

// Service реализует операции авторизации и мутаций над сохраненными книгами:
// login, register, me, saveBook, removeBook. Все операции независимы,
// состояние между запросами не хранится.
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens *jwt.Service
}

// NewService создает новый auth service
func NewService(logger *slog.Logger, users storage.UserStorage, tokens *jwt.Service) *Service {
	return &Service{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// TokenTTL возвращает время жизни access token
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Register регистрирует нового пользователя и выдает access token
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	now := time.Now()
	user := &models.User{
		ID:         uuid.New().String(),
		Username:   username,
		Email:      email,
		SavedBooks: []models.SavedBook{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Храним только bcrypt хеш, plaintext пароль никуда не записывается
	if err := user.SetPassword(password); err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		return nil, "", ErrOperationFailed
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, "", ErrAlreadyExists
		}
		s.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		return nil, "", ErrOperationFailed
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		return nil, "", ErrOperationFailed
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return sanitize(user), token, nil
}

// Login аутентифицирует пользователя по email и паролю и выдает access token.
// Несуществующий email и неверный пароль дают одинаковую ошибку,
// чтобы не раскрывать, зарегистрирован ли email.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return nil, "", ErrOperationFailed
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		return nil, "", ErrOperationFailed
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return sanitize(user), token, nil
}

// Me возвращает пользователя из request identity
func (s *Service) Me(ctx context.Context, ident *Identity) (*models.User, error) {
	if ident == nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return nil, ErrOperationFailed
	}

	return sanitize(user), nil
}

// SaveBook добавляет книгу в savedBooks пользователя.
// Set semantics: повторное сохранение того же bookId - no-op без ошибки.
func (s *Service) SaveBook(ctx context.Context, ident *Identity, book models.SavedBook) (*models.User, error) {
	if ident == nil {
		return nil, ErrUnauthenticated
	}

	if book.BookID == "" {
		return nil, fmt.Errorf("%w: bookId is required", ErrInvalidInput)
	}
	if book.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if book.Authors == nil {
		book.Authors = []string{}
	}

	user, err := s.users.AddSavedBook(ctx, ident.ID, book)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to save book",
			slog.String("user_id", ident.ID),
			slog.String("book_id", book.BookID),
			slog.Any("error", err))
		return nil, ErrOperationFailed
	}

	s.logger.InfoContext(ctx, "book saved",
		slog.String("user_id", ident.ID),
		slog.String("book_id", book.BookID))

	return sanitize(user), nil
}

// RemoveBook удаляет книгу из savedBooks пользователя.
// Удаление несохраненного bookId - no-op: возвращается неизменившийся пользователь.
func (s *Service) RemoveBook(ctx context.Context, ident *Identity, bookID string) (*models.User, error) {
	if ident == nil {
		return nil, ErrUnauthenticated
	}

	if bookID == "" {
		return nil, fmt.Errorf("%w: bookId is required", ErrInvalidInput)
	}

	user, err := s.users.RemoveSavedBook(ctx, ident.ID, bookID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to remove book",
			slog.String("user_id", ident.ID),
			slog.String("book_id", bookID),
			slog.Any("error", err))
		return nil, ErrOperationFailed
	}

	s.logger.InfoContext(ctx, "book removed",
		slog.String("user_id", ident.ID),
		slog.String("book_id", bookID))

	return sanitize(user), nil
}

// sanitize возвращает копию пользователя без password hash
func sanitize(user *models.User) *models.User {
	clean := *user
	clean.PasswordHash = ""
	if clean.SavedBooks == nil {
		clean.SavedBooks = []models.SavedBook{}
	}
	return &clean
}
