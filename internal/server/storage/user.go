package storage

import (
	"context"

	"github.com/iudanet/bookshelf/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username or email is already taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID with saved books
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves user by email with saved books
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUsername retrieves user by username with saved books
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// AddSavedBook atomically adds a book to the user's saved books.
	// Set semantics: if a book with the same bookId is already saved the
	// collection is left unchanged and no error is returned.
	// Returns the updated user, or ErrUserNotFound if the user doesn't exist.
	AddSavedBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error)

	// RemoveSavedBook atomically removes the book with the given bookId.
	// Removing a bookId that is not saved is not an error.
	// Returns the updated user, or ErrUserNotFound if the user doesn't exist.
	RemoveSavedBook(ctx context.Context, userID, bookID string) (*models.User, error)

	// Close releases the underlying storage resources
	Close() error
}
