package repository

import (
	"context"
	"errors"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AchievementsRepo struct {
	MongoCollection *mongo.Collection
}

func GetAchievementsRepo(client *mongo.Client) *AchievementsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("ACHIEVEMENTS_COLLECTION")
	return &AchievementsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// GetUnlocked returns every achievement the user has unlocked.
func (r *AchievementsRepo) GetUnlocked(ctx context.Context, userID string) ([]*model.UserAchievement, error) {
	timer := utils.TrackDBOperation("find", "achievements")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "achievement_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var unlocked []*model.UserAchievement
	if err = cursor.All(ctx, &unlocked); err != nil {
		utils.TrackError("database", "achievement_decode_failed")
		return nil, err
	}
	return unlocked, nil
}

// Unlock records an achievement. Unlocks are append-only; the unique
// (user_id, key) index makes a repeat unlock a no-op.
func (r *AchievementsRepo) Unlock(ctx context.Context, unlock *model.UserAchievement) error {
	timer := utils.TrackDBOperation("insert", "achievements")
	defer timer.ObserveDuration()

	if unlock.UserID == "" || unlock.Key == "" {
		utils.TrackError("database", "invalid_achievement_data")
		return errors.New("user ID and achievement key are required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, unlock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		utils.TrackError("database", "achievement_unlock_failed")
		return err
	}

	utils.TrackAchievementUnlocked(unlock.Key)
	return nil
}

// DeleteUserAchievements removes all of a user's unlocks, used on account
// deletion.
func (r *AchievementsRepo) DeleteUserAchievements(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "achievements")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "achievement_deletion_failed")
		return err
	}
	return nil
}
