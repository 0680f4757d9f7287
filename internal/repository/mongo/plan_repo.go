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
)

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (string, error) {
	if plan.UserID == "" || plan.WeekStartDate.IsZero() {
		return "", errors.New("plan requires userId and weekStartDate")
	}
	plan.ID = uuid.NewString()
	plan.WeekStartDate = plan.WeekStartDate.UTC()
	plan.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return plan.ID, nil
}

// GetByUserAndWeek finds the plan of a user for the week starting at weekStart.
func (r *mongoPlanRepository) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"userId": userID, "weekStartDate": weekStart.UTC()}
	if err := r.collection.FindOne(ctx, filter).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Delete removes only the plan document. Mongo has no cascades; callers remove
// workouts and segments themselves.
func (r *mongoPlanRepository) Delete(ctx context.Context, planID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": planID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
