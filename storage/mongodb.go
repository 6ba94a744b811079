package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jghoshh/virtuo-push/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStorage is a struct representing a MongoDB storage.
// It provides an interface to perform the read and cleanup operations the
// reminder engine needs on the users, habits and push token collections.
type MongoStorage struct {
	client *mongo.Client
	dbName string
}

// NewMongoStorage creates a new instance of MongoStorage.
// This function doesn't establish a connection to the MongoDB server.
// To connect to the server, use the Connect method of the returned MongoStorage instance.
func NewMongoStorage() *MongoStorage {
	return &MongoStorage{}
}

// Connect establishes a connection to the MongoDB server at the given URI and database name.
// Sets up indexes and unique constraints as necessary.
// Returns an error if any issues are encountered.
func (m *MongoStorage) Connect(dbName, uri string) error {

	// Set a timeout for the connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("error connecting to MongoDB: %v", err)
	}

	m.client = client
	m.dbName = dbName

	// Initializing habits collection.
	// Create an index on the "user_id" field to speed up the per-user habit
	// scan the engine performs every tick.
	habitsCollection := m.client.Database(m.dbName).Collection("habits")

	userIdIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1, // 1 for ascending order
		},
		Options: options.Index(),
	}

	_, err = habitsCollection.Indexes().CreateOne(ctx, userIdIndexModel)
	if err != nil {
		return fmt.Errorf("error creating user_id index on habits: %v", err)
	}

	// Initializing pushTokens collection
	tokensCollection := m.client.Database(m.dbName).Collection("pushTokens")

	// Create the user_id index using the model defined previously
	_, err = tokensCollection.Indexes().CreateOne(ctx, userIdIndexModel)
	if err != nil {
		return fmt.Errorf("error creating user_id index on pushTokens: %v", err)
	}

	// Create a unique index on the "token" field. A token belongs to at most
	// one user at a time, and the cleanup batch delete filters on this field.
	tokenIndexModel := mongo.IndexModel{
		Keys: bson.M{
			"token": 1,
		},
		Options: options.Index().SetUnique(true),
	}

	_, err = tokensCollection.Indexes().CreateOne(ctx, tokenIndexModel)
	if err != nil {
		return fmt.Errorf("error creating token index on pushTokens: %v", err)
	}

	return nil
}

// Disconnect closes the connection to the MongoDB server.
// It should be called when the MongoStorage instance is no longer needed.
// Returns an error if the disconnection process fails.
func (m *MongoStorage) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %v", err)
	}

	return nil
}

// ListUsers returns every document in the 'users' collection.
// Returns an error if the find operation fails.
func (m *MongoStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	collection := m.client.Database(m.dbName).Collection("users")
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, cursor.Err()
}

// FindActiveHabits finds the habit documents belonging to the given user that
// are not archived. Archived habits never reach the evaluator.
// Returns the found habits as a slice of Habit instances and an error if the find operation fails.
func (m *MongoStorage) FindActiveHabits(ctx context.Context, userID interface{}) ([]models.Habit, error) {
	collection := m.client.Database(m.dbName).Collection("habits")
	cursor, err := collection.Find(ctx, bson.M{
		"user_id":  userID,
		"archived": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var habits []models.Habit
	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, cursor.Err()
}

// AddHabit adds a new habit document to the 'habits' collection.
// The habit is provided as a pointer to a Habit instance.
// Returns the added habit instance and an error if the insert operation fails.
func (m *MongoStorage) AddHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	if habit.Name == "" || habit.UserID.IsZero() {
		return nil, errors.New("invalid habit fields")
	}

	collection := m.client.Database(m.dbName).Collection("habits")
	result, err := collection.InsertOne(ctx, habit)
	if err != nil {
		return nil, err
	}

	habit.ID = result.InsertedID.(primitive.ObjectID)
	return habit, nil
}

// ListPushTokens returns the push token documents registered by the given user.
// Returns an error if the find operation fails.
func (m *MongoStorage) ListPushTokens(ctx context.Context, userID interface{}) ([]models.PushToken, error) {
	collection := m.client.Database(m.dbName).Collection("pushTokens")
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tokens []models.PushToken
	for cursor.Next(ctx) {
		var token models.PushToken
		if err := cursor.Decode(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, cursor.Err()
}

// AddPushToken adds a new push token document to the 'pushTokens' collection.
// Returns the added token instance and an error if the insert operation fails.
// Inserting a token string that already exists violates the unique token index.
func (m *MongoStorage) AddPushToken(ctx context.Context, token *models.PushToken) (*models.PushToken, error) {
	if token.Token == "" || token.UserID.IsZero() {
		return nil, errors.New("invalid push token fields")
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	collection := m.client.Database(m.dbName).Collection("pushTokens")
	result, err := collection.InsertOne(ctx, token)
	if err != nil {
		if writeException, ok := err.(mongo.WriteException); ok {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code == 11000 {
					return nil, fmt.Errorf("token is already registered")
				}
			}
		}
		return nil, err
	}

	token.ID = result.InsertedID.(primitive.ObjectID)
	return token, nil
}

// DeletePushTokens deletes the named token records belonging to the given user
// in one batch. A no-op returning a zero count when tokens is empty.
// Returns the result of the delete operation as a DeleteResult instance and an error if the delete operation fails.
func (m *MongoStorage) DeletePushTokens(ctx context.Context, userID interface{}, tokens []string) (*DeleteResult, error) {
	if len(tokens) == 0 {
		return &DeleteResult{DeletedCount: 0}, nil
	}

	collection := m.client.Database(m.dbName).Collection("pushTokens")
	result, err := collection.DeleteMany(ctx, bson.M{
		"user_id": userID,
		"token":   bson.M{"$in": tokens},
	})
	if err != nil {
		return nil, err
	}

	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}
