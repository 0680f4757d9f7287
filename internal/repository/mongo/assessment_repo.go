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

type mongoAssessmentRepository struct {
	collection *mongo.Collection
}

func NewMongoAssessmentRepository(db *mongo.Database) repository.AssessmentRepository {
	return &mongoAssessmentRepository{
		collection: db.Collection(assessmentCollectionName),
	}
}

func (r *mongoAssessmentRepository) Create(ctx context.Context, a *domain.FitnessAssessment) (string, error) {
	if a.UserID == "" {
		return "", errors.New("assessment requires userId")
	}
	a.ID = uuid.NewString()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// GetLatestByUserID returns the most recent assessment of a user.
func (r *mongoAssessmentRepository) GetLatestByUserID(ctx context.Context, userID string) (*domain.FitnessAssessment, error) {
	var a domain.FitnessAssessment
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
