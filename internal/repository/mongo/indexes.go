package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	assessmentCollectionName = "fitness_assessments"
	profileCollectionName    = "profiles"
	exerciseCollectionName   = "exercises"
	planCollectionName       = "plans"
	workoutCollectionName    = "workouts"
	segmentCollectionName    = "workout_segments"
)

// caseInsensitive is the collation used for exercise names.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// EnsureIndexes creates necessary indexes. Call during startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		assessmentCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		exerciseCollectionName: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
			},
		},
		planCollectionName: {
			{
				// One plan per user and week.
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStartDate", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		workoutCollectionName: {
			{Keys: bson.D{{Key: "planId", Value: 1}, {Key: "scheduledDate", Value: 1}}},
		},
		segmentCollectionName: {
			{Keys: bson.D{{Key: "workoutId", Value: 1}, {Key: "segmentOrder", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes for %s: %w", name, err)
		}
	}
	return nil
}
