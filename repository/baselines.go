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

type BaselinesRepo struct {
	MongoCollection *mongo.Collection
}

func GetBaselinesRepo(client *mongo.Client) *BaselinesRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("BASELINES_COLLECTION")
	return &BaselinesRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// GetBaseline returns the stored baseline for a user, or nil when none has
// been computed yet.
func (r *BaselinesRepo) GetBaseline(ctx context.Context, userID string) (*model.SpendingBaseline, error) {
	timer := utils.TrackDBOperation("find", "baselines")
	defer timer.ObserveDuration()

	var baseline model.SpendingBaseline
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&baseline)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "baseline_fetch_failed")
		return nil, err
	}
	return &baseline, nil
}

// UpsertBaseline replaces the user's baseline, creating it on first write.
func (r *BaselinesRepo) UpsertBaseline(ctx context.Context, baseline *model.SpendingBaseline) error {
	timer := utils.TrackDBOperation("upsert", "baselines")
	defer timer.ObserveDuration()

	if baseline.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"user_id": baseline.UserID}, baseline, opts)
	if err != nil {
		utils.TrackError("database", "baseline_upsert_failed")
		return err
	}
	return nil
}

// DeleteBaseline removes a user's baseline, used on account deletion.
func (r *BaselinesRepo) DeleteBaseline(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "baselines")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "baseline_deletion_failed")
		return err
	}
	return nil
}
