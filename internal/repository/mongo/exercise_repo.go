package mongo

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise into the catalog.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return "", errors.New("exercise name is required")
	}
	exercise.ID = uuid.NewString()
	exercise.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

// GetByName matches the catalog name ignoring case, using the same collation as the unique index.
func (r *mongoExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"name": strings.TrimSpace(name)}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *mongoExerciseRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Exercise, error) {
	var exercise domain.Exercise
	var err error
	if opts != nil {
		err = r.collection.FindOne(ctx, filter, opts).Decode(&exercise)
	} else {
		err = r.collection.FindOne(ctx, filter).Decode(&exercise)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}
