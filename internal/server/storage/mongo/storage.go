package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go.mongodb.org/mongo-driver/bson"
)

const usersCollection = "users"

// Storage represents MongoDB storage implementation
// Users are stored as one collection of documents with the savedBooks
// array embedded, unique by bookId.
type Storage struct {
	client   *mongo.Client
	database string
}

// New creates a new MongoDB storage instance and ensures indexes
func New(ctx context.Context, uri, database string) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Проверяем соединение
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	storage := &Storage{
		client:   client,
		database: database,
	}

	if err := storage.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return storage, nil
}

// Close closes the MongoDB connection
func (s *Storage) Close() error {
	return s.client.Disconnect(context.Background())
}

// users returns the users collection handle
func (s *Storage) users() *mongo.Collection {
	return s.client.Database(s.database).Collection(usersCollection)
}

// ensureIndexes создает уникальные индексы на username и email
func (s *Storage) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := s.users().Indexes().CreateMany(ctx, indexes)
	return err
}
