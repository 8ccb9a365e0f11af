package repository

import (
	"context"
	"errors"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StreaksRepo struct {
	MongoCollection *mongo.Collection
}

func GetStreaksRepo(client *mongo.Client) *StreaksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("STREAKS_COLLECTION")
	return &StreaksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// GetStreak returns the stored streak state, or nil for users with no
// recorded check-ins.
func (r *StreaksRepo) GetStreak(ctx context.Context, userID string) (*model.StreakState, error) {
	timer := utils.TrackDBOperation("find", "streaks")
	defer timer.ObserveDuration()

	var state model.StreakState
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "streak_fetch_failed")
		return nil, err
	}
	return &state, nil
}

// UpsertStreak replaces the user's streak state, creating it on first write.
func (r *StreaksRepo) UpsertStreak(ctx context.Context, state *model.StreakState) error {
	timer := utils.TrackDBOperation("upsert", "streaks")
	defer timer.ObserveDuration()

	if state.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"user_id": state.UserID}, state, opts)
	if err != nil {
		utils.TrackError("database", "streak_upsert_failed")
		return err
	}
	return nil
}

// DeleteStreak removes a user's streak state, used on account deletion.
func (r *StreaksRepo) DeleteStreak(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "streaks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "streak_deletion_failed")
		return err
	}
	return nil
}
