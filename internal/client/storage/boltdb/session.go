package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/bookshelf/internal/client/storage"
)

var sessionKey = []byte("current")

// SaveSession stores the session
func (s *Storage) SaveSession(ctx context.Context, session *storage.Session) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put(sessionKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
}

// GetSession retrieves the stored session
func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	var session *storage.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(sessionKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession removes the stored session (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get(sessionKey) == nil {
			return storage.ErrSessionNotFound
		}

		if err := bucket.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}

// SaveSearchResults caches the last search results keyed by bookId.
// Предыдущий кэш полностью заменяется.
func (s *Storage) SaveSearchResults(ctx context.Context, results []storage.SearchResult) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Пересоздаем bucket, чтобы не накапливать старые результаты
		if err := tx.DeleteBucket(bucketSearch); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to clear search bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(bucketSearch)
		if err != nil {
			return fmt.Errorf("failed to create search bucket: %w", err)
		}

		for _, result := range results {
			data, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("failed to marshal search result: %w", err)
			}

			if err := bucket.Put([]byte(result.BookID), data); err != nil {
				return fmt.Errorf("failed to save search result: %w", err)
			}
		}

		return nil
	})
}

// GetSearchResult looks up a cached search result by bookId
func (s *Storage) GetSearchResult(ctx context.Context, bookID string) (*storage.SearchResult, error) {
	var result *storage.SearchResult

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSearch)
		if bucket == nil {
			return storage.ErrSessionNotFound
		}

		data := bucket.Get([]byte(bookID))
		if data == nil {
			return storage.ErrSessionNotFound
		}

		result = &storage.SearchResult{}
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to unmarshal search result: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
