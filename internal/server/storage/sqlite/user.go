package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Проверяем на duplicate username/email
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by ID with saved books
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, "id", userID)
}

// GetUserByEmail retrieves user by email with saved books
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByUsername retrieves user by username with saved books
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username", username)
}

// getUser загружает пользователя по одной из уникальных колонок
func (s *Storage) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE %s = ?
	`, column)

	user := &models.User{}

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	books, err := s.loadSavedBooks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.SavedBooks = books

	return user, nil
}

// loadSavedBooks загружает книги пользователя в порядке добавления
func (s *Storage) loadSavedBooks(ctx context.Context, userID string) ([]models.SavedBook, error) {
	query := `
		SELECT book_id, title, authors, description, image, link
		FROM saved_books
		WHERE user_id = ?
		ORDER BY rowid
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved books: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	books := make([]models.SavedBook, 0)
	for rows.Next() {
		var book models.SavedBook
		var authorsJSON string

		if err := rows.Scan(
			&book.BookID,
			&book.Title,
			&authorsJSON,
			&book.Description,
			&book.Image,
			&book.Link,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved book: %w", err)
		}

		if err := json.Unmarshal([]byte(authorsJSON), &book.Authors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal authors: %w", err)
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved books: %w", err)
	}

	return books, nil
}

// AddSavedBook atomically adds a book to the user's saved books (set semantics)
func (s *Storage) AddSavedBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	authorsJSON, err := json.Marshal(book.Authors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal authors: %w", err)
	}

	// Одна INSERT команда: дубликат bookId молча игнорируется через
	// ON CONFLICT DO NOTHING, отсутствующий пользователь ломает FK constraint
	query := `
		INSERT INTO saved_books (user_id, book_id, title, authors, description, image, link, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, book_id) DO NOTHING
	`

	_, err = s.db.ExecContext(ctx, query,
		userID,
		book.BookID,
		book.Title,
		string(authorsJSON),
		book.Description,
		book.Image,
		book.Link,
		time.Now(),
	)

	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert saved book: %w", err)
	}

	return s.GetUserByID(ctx, userID)
}

// RemoveSavedBook atomically removes the book with the given bookId
func (s *Storage) RemoveSavedBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	query := `DELETE FROM saved_books WHERE user_id = ? AND book_id = ?`

	// 0 затронутых строк - не ошибка: удаление несохраненной книги идемпотентно
	if _, err := s.db.ExecContext(ctx, query, userID, bookID); err != nil {
		return nil, fmt.Errorf("failed to delete saved book: %w", err)
	}

	// GetUserByID вернет ErrUserNotFound, если пользователя нет
	return s.GetUserByID(ctx, userID)
}
