package mongo

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to TEST_MONGO_URI and returns a store over a throwaway database.
func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := ConnectDB(ctx, uri)
	require.NoError(t, err)

	db := client.Database("coach_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = DisconnectDB(client)
	})
	return NewStore(db)
}

func TestPlanRepository_UniqueWeek(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	week := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	id, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u1", WeekStartDate: week})
	require.NoError(t, err)

	_, err = store.Plans.Create(ctx, &domain.Plan{UserID: "u1", WeekStartDate: week})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := store.Plans.GetByUserAndWeek(ctx, "u1", week)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	require.NoError(t, store.Plans.Delete(ctx, id))
	_, err = store.Plans.GetByUserAndWeek(ctx, "u1", week)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSegmentRepository_ListOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	workoutID, err := store.Workouts.Create(ctx, &domain.Workout{
		PlanID: "p1", UserID: "u1", ActivityType: domain.ActivityRunning,
		ScheduledDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, store.Segments.CreateMany(ctx, []domain.WorkoutSegment{
		{WorkoutID: workoutID, SegmentOrder: 2, SegmentType: "Main Set"},
		{WorkoutID: workoutID, SegmentOrder: 1, SegmentType: "Warm-up"},
	}))

	segments, err := store.Segments.ListByWorkoutIDs(ctx, []string{workoutID})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Warm-up", segments[0].SegmentType)

	require.NoError(t, store.Segments.DeleteByWorkoutID(ctx, workoutID))
	segments, err = store.Segments.ListByWorkoutIDs(ctx, []string{workoutID})
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestExerciseRepository_GetByNameIgnoresCase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Exercises.Create(ctx, &domain.Exercise{Name: "Flutter Kick"})
	require.NoError(t, err)

	got, err := store.Exercises.GetByName(ctx, "  flutter kick ")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = store.Exercises.Create(ctx, &domain.Exercise{Name: "FLUTTER KICK"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProfileRepository_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Profiles.SetAssessmentCompleted(ctx, "u1", true))
	p, err := store.Profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, p.AssessmentCompleted)
}
