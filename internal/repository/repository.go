package repository

import (
	"alcyxob/virtual-coach/internal/domain"
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// None of the repositories below share a transaction; callers that write
// across several of them must undo their own partial work.

// AssessmentRepository stores onboarding assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *domain.FitnessAssessment) (string, error)
	// GetLatestByUserID returns the newest assessment or ErrNotFound.
	GetLatestByUserID(ctx context.Context, userID string) (*domain.FitnessAssessment, error)
}

// ProfileRepository updates per-user flags.
type ProfileRepository interface {
	SetAssessmentCompleted(ctx context.Context, userID string, completed bool) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// PlanRepository stores weekly plans.
type PlanRepository interface {
	// Create returns ErrDuplicate if a plan for (user, week) already exists
	// and the backend enforces uniqueness.
	Create(ctx context.Context, plan *domain.Plan) (string, error)
	GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.Plan, error)
	Delete(ctx context.Context, planID string) error
}

// WorkoutRepository stores the days of a plan.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	// ListByPlanID returns workouts ordered by scheduled date.
	ListByPlanID(ctx context.Context, planID string) ([]domain.Workout, error)
	Delete(ctx context.Context, workoutID string) error
}

// SegmentRepository stores workout segments.
type SegmentRepository interface {
	// CreateMany inserts all segments of one workout in a single statement.
	CreateMany(ctx context.Context, segments []domain.WorkoutSegment) error
	// ListByWorkoutIDs returns segments ordered by workout, then segment order.
	ListByWorkoutIDs(ctx context.Context, workoutIDs []string) ([]domain.WorkoutSegment, error)
	DeleteByWorkoutID(ctx context.Context, workoutID string) error
}

// ExerciseRepository reads the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
}

// Store bundles every repository of one backend.
type Store struct {
	Assessments AssessmentRepository
	Profiles    ProfileRepository
	Plans       PlanRepository
	Workouts    WorkoutRepository
	Segments    SegmentRepository
	Exercises   ExerciseRepository
}
