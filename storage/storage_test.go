package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jghoshh/virtuo-push/models"
)

var store StorageInterface

// TestMain connects to the test database when MONGODB_URI is configured.
// Tests skip when it is not, so the suite stays runnable without a live
// MongoDB instance.
func TestMain(m *testing.M) {
	_ = godotenv.Load("../.env")

	uri := os.Getenv("MONGODB_URI")
	dbName := os.Getenv("TEST_DB_NAME")
	if dbName == "" {
		dbName = "virtuo_push_test"
	}

	if uri != "" {
		var err error
		store, err = NewStorage(dbName, uri)
		if err != nil {
			panic("Error initializing storage: " + err.Error())
		}
	}

	os.Exit(m.Run())
}

func requireStore(t *testing.T) {
	t.Helper()
	if store == nil {
		t.Skip("MONGODB_URI not set; skipping storage integration test")
	}
}

func TestAddAndFindActiveHabits(t *testing.T) {
	requireStore(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	active := &models.Habit{
		UserID:   userID,
		Name:     "Stretch",
		Schedule: models.Schedule{Type: models.ScheduleDaily},
	}
	archived := &models.Habit{
		UserID:   userID,
		Name:     "Old habit",
		Archived: true,
	}

	_, err := store.AddHabit(ctx, active)
	require.NoError(t, err)
	_, err = store.AddHabit(ctx, archived)
	require.NoError(t, err)

	habits, err := store.FindActiveHabits(ctx, userID)
	require.NoError(t, err)

	require.Len(t, habits, 1)
	assert.Equal(t, "Stretch", habits[0].Name)
}

func TestAddHabitRejectsInvalidFields(t *testing.T) {
	requireStore(t)

	_, err := store.AddHabit(context.Background(), &models.Habit{Name: "No owner"})
	assert.Error(t, err)
}

func TestPushTokenLifecycle(t *testing.T) {
	requireStore(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	tokens := []string{"itest-tok-1", "itest-tok-2", "itest-tok-3"}
	for _, tok := range tokens {
		_, err := store.AddPushToken(ctx, &models.PushToken{
			UserID:    userID,
			Token:     tok,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	listed, err := store.ListPushTokens(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	// Batch delete removes exactly the named tokens.
	result, err := store.DeletePushTokens(ctx, userID, []string{"itest-tok-1", "itest-tok-3"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DeletedCount)

	listed, err = store.ListPushTokens(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "itest-tok-2", listed[0].Token)

	_, err = store.DeletePushTokens(ctx, userID, []string{"itest-tok-2"})
	require.NoError(t, err)
}

func TestDeletePushTokensEmptySetIsNoop(t *testing.T) {
	requireStore(t)

	result, err := store.DeletePushTokens(context.Background(), primitive.NewObjectID(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedCount)
}

func TestAddPushTokenRejectsDuplicates(t *testing.T) {
	requireStore(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := store.AddPushToken(ctx, &models.PushToken{UserID: userID, Token: "itest-dup"})
	require.NoError(t, err)
	defer func() {
		_, _ = store.DeletePushTokens(ctx, userID, []string{"itest-dup"})
	}()

	_, err = store.AddPushToken(ctx, &models.PushToken{UserID: primitive.NewObjectID(), Token: "itest-dup"})
	assert.Error(t, err)
}
