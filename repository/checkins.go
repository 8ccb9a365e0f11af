package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CheckinsRepo struct {
	MongoCollection *mongo.Collection
}

func GetCheckinsRepo(client *mongo.Client) *CheckinsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("CHECKINS_COLLECTION")
	return &CheckinsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateCheckin inserts a weekly check-in. The unique index on
// (user_id, week_ending_date) rejects a second record for the same week,
// which also serializes concurrent submissions for one user.
func (r *CheckinsRepo) CreateCheckin(ctx context.Context, checkin *model.Checkin) error {
	timer := utils.TrackDBOperation("insert", "checkins")
	defer timer.ObserveDuration()

	if checkin.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if checkin.WeekEndingDate.IsZero() {
		utils.TrackError("database", "missing_week_ending_date")
		return errors.New("week ending date is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, checkin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_checkin")
			return model.ErrDuplicateCheckin
		}
		utils.TrackError("database", "checkin_creation_failed")
		return err
	}
	return nil
}

// GetRecentCheckins returns up to limit check-ins, newest week first.
func (r *CheckinsRepo) GetRecentCheckins(ctx context.Context, userID string, limit int) ([]*model.Checkin, error) {
	timer := utils.TrackDBOperation("find", "checkins")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "week_ending_date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "checkin_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkins []*model.Checkin
	if err = cursor.All(ctx, &checkins); err != nil {
		utils.TrackError("database", "checkin_decode_failed")
		return nil, err
	}
	return checkins, nil
}

// GetCheckinByWeek returns the check-in for an exact week-ending date, or
// nil when the week has no record.
func (r *CheckinsRepo) GetCheckinByWeek(ctx context.Context, userID string, weekEnding time.Time) (*model.Checkin, error) {
	timer := utils.TrackDBOperation("find", "checkins")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":          userID,
		"week_ending_date": weekEnding,
	}

	var checkin model.Checkin
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&checkin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "checkin_fetch_failed")
		return nil, err
	}
	return &checkin, nil
}

// CountCheckins counts all recorded check-ins for a user.
func (r *CheckinsRepo) CountCheckins(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "checkins")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "checkin_count_failed")
		return 0, err
	}
	return int(count), nil
}

// DeleteUserCheckins removes all of a user's check-ins, used on account
// deletion.
func (r *CheckinsRepo) DeleteUserCheckins(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "checkins")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "checkin_deletion_failed")
		return err
	}
	return nil
}
