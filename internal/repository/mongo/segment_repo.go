package mongo

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoSegmentRepository implements repository.SegmentRepository
type mongoSegmentRepository struct {
	collection *mongo.Collection
}

func NewMongoSegmentRepository(db *mongo.Database) repository.SegmentRepository {
	return &mongoSegmentRepository{
		collection: db.Collection(segmentCollectionName),
	}
}

// CreateMany bulk-inserts segments. An ordered insert stops at the first bad
// document, so a failure may leave earlier ones behind for the caller to delete.
func (r *mongoSegmentRepository) CreateMany(ctx context.Context, segments []domain.WorkoutSegment) error {
	if len(segments) == 0 {
		return nil
	}
	docs := make([]interface{}, len(segments))
	for i := range segments {
		if segments[i].WorkoutID == "" || segments[i].SegmentType == "" {
			return errors.New("segment requires workoutId and segmentType")
		}
		if segments[i].ID == "" {
			segments[i].ID = uuid.NewString()
		}
		docs[i] = segments[i]
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// ListByWorkoutIDs retrieves segments for several workouts in one query.
func (r *mongoSegmentRepository) ListByWorkoutIDs(ctx context.Context, workoutIDs []string) ([]domain.WorkoutSegment, error) {
	segments := []domain.WorkoutSegment{}
	if len(workoutIDs) == 0 {
		return segments, nil
	}
	filter := bson.M{"workoutId": bson.M{"$in": workoutIDs}}
	findOptions := options.Find().SetSort(bson.D{{Key: "workoutId", Value: 1}, {Key: "segmentOrder", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *mongoSegmentRepository) DeleteByWorkoutID(ctx context.Context, workoutID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return err
}
