package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iudanet/bookshelf/internal/models"
	"github.com/iudanet/bookshelf/internal/server/storage"
)

// CreateUser creates a new user document
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	if user.SavedBooks == nil {
		user.SavedBooks = []models.SavedBook{}
	}

	_, err := s.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"_id": userID})
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"email": email})
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"username": username})
}

// getUser загружает один документ пользователя по фильтру
func (s *Storage) getUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User

	err := s.users().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.SavedBooks == nil {
		user.SavedBooks = []models.SavedBook{}
	}

	return &user, nil
}

// AddSavedBook atomically adds a book to the user's saved books (set semantics).
// The filter guards on savedBooks.bookId so the push is a no-op when the book
// is already saved; this keys the set on bookId alone, unlike a plain $addToSet
// which compares whole subdocuments.
func (s *Storage) AddSavedBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	filter := bson.M{
		"_id":               userID,
		"savedBooks.bookId": bson.M{"$ne": book.BookID},
	}
	update := bson.M{
		"$push": bson.M{"savedBooks": book},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Либо книга уже сохранена, либо пользователя нет -
			// обычный lookup различает эти случаи
			return s.GetUserByID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to add saved book: %w", err)
	}

	if user.SavedBooks == nil {
		user.SavedBooks = []models.SavedBook{}
	}

	return &user, nil
}

// RemoveSavedBook atomically removes the book with the given bookId via $pull
func (s *Storage) RemoveSavedBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to remove saved book: %w", err)
	}

	if user.SavedBooks == nil {
		user.SavedBooks = []models.SavedBook{}
	}

	return &user, nil
}
