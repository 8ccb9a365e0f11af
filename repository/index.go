package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the application relies on. The unique
// (user_id, week_ending_date) index on checkins enforces one check-in per
// user per week, and the unique (user_id, key) index on achievements keeps
// unlocks append-only.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checkinIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "week_ending_date", Value: -1},
			},
			Options: options.Index().
				SetName("user_week_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("session_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("session_expiry_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	baselineIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_baseline_unique").
				SetUnique(true),
		},
	}

	streakIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_streak_unique").
				SetUnique(true),
		},
	}

	achievementIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "key", Value: 1},
			},
			Options: options.Index().
				SetName("user_achievement_unique").
				SetUnique(true),
		},
	}

	collections := []struct {
		name    string
		indexes []mongo.IndexModel
	}{
		{"checkins", checkinIndexes},
		{"users", userIndexes},
		{"sessions", sessionIndexes},
		{"baselines", baselineIndexes},
		{"streaks", streakIndexes},
		{"achievements", achievementIndexes},
	}

	for _, c := range collections {
		if _, err := db.Collection(c.name).Indexes().CreateMany(ctx, c.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", c.name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
