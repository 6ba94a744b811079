package storage

import (
	"context"
	"fmt"
	"github.com/jghoshh/virtuo-push/models"
)

// DeleteResult represents the result of a deletion operation in MongoDB,
// specifically the count of documents deleted.
type DeleteResult struct {
	DeletedCount int64
}

// StorageInterface defines the set of methods that any persistent storage
// backend needs to implement to serve the reminder engine.
type StorageInterface interface {
	// Establishes a connection to the storage backend.
	Connect(dbName, uri string) error
	// Disconnects from the storage backend.
	Disconnect() error
	// Returns every user known to the system.
	ListUsers(ctx context.Context) ([]models.User, error)
	// Returns the non-archived habits belonging to a user.
	FindActiveHabits(ctx context.Context, userID interface{}) ([]models.Habit, error)
	// Adds a new habit for a user.
	AddHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	// Returns the push tokens registered by a user.
	ListPushTokens(ctx context.Context, userID interface{}) ([]models.PushToken, error)
	// Registers a push token under a user.
	AddPushToken(ctx context.Context, token *models.PushToken) (*models.PushToken, error)
	// Deletes the named token records for a user in one batch.
	DeletePushTokens(ctx context.Context, userID interface{}, tokens []string) (*DeleteResult, error)
}

// NewStorage creates a new StorageInterface with a MongoDB backend,
// using the provided URI to connect to the MongoDB server.
func NewStorage(dbName, uri string) (StorageInterface, error) {
	storage := NewMongoStorage()
	err := storage.Connect(dbName, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return storage, nil
}
