package mongo

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.PlanID == "" || workout.UserID == "" || !workout.ActivityType.Valid() {
		return "", errors.New("workout requires planId, userId and a valid activityType")
	}
	workout.ID = uuid.NewString()
	workout.ScheduledDate = workout.ScheduledDate.UTC()
	workout.CreatedAt = time.Now().UTC()
	if workout.Status == "" {
		workout.Status = domain.WorkoutStatusScheduled
	}

	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return "", err
	}
	return workout.ID, nil
}

// ListByPlanID retrieves all workouts of a plan, earliest day first.
func (r *mongoWorkoutRepository) ListByPlanID(ctx context.Context, planID string) ([]domain.Workout, error) {
	workouts := []domain.Workout{}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *mongoWorkoutRepository) Delete(ctx context.Context, workoutID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": workoutID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
