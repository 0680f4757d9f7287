package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPlanPersister_Persist(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()

	planID, err := NewPlanPersister(store, nil, nopLog).Persist(ctx, "u1", testMonday(), sampleDraft())
	require.NoError(t, err)
	require.NotEmpty(t, planID)

	assert.Equal(t, 1, countRows(t, db, "plans"))
	assert.Equal(t, 7, countRows(t, db, "workouts"))
	assert.Equal(t, 10, countRows(t, db, "workout_segments"))

	workouts, err := store.Workouts.ListByPlanID(ctx, planID)
	require.NoError(t, err)
	require.Len(t, workouts, 7)
	for i, w := range workouts {
		assert.Equal(t, testMonday().AddDate(0, 0, i), w.ScheduledDate)
		assert.Equal(t, domain.WorkoutStatusScheduled, w.Status)
		assert.False(t, w.UserModifiedActivity)
		assert.False(t, w.UserModifiedDetails)
	}
}

func TestPlanPersister_SecondPersistConflicts(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	p := NewPlanPersister(store, nil, nopLog)

	_, err := p.Persist(ctx, "u1", testMonday(), sampleDraft())
	require.NoError(t, err)

	_, err = p.Persist(ctx, "u1", testMonday(), sampleDraft())
	assert.ErrorIs(t, err, ErrPlanExists)

	assert.Equal(t, 1, countRows(t, db, "plans"))
	assert.Equal(t, 7, countRows(t, db, "workouts"))

	// Another week is independent.
	_, err = p.Persist(ctx, "u1", testMonday().AddDate(0, 0, 7), sampleDraft())
	assert.NoError(t, err)
}

// racingPlans hides existing plans from the pre-check, as a concurrent request would see them.
type racingPlans struct {
	repository.PlanRepository
}

func (racingPlans) GetByUserAndWeek(context.Context, string, time.Time) (*domain.Plan, error) {
	return nil, repository.ErrNotFound
}

func TestPlanPersister_DuplicateInsertConflicts(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()
	_, err := NewPlanPersister(store, nil, nopLog).Persist(ctx, "u1", testMonday(), sampleDraft())
	require.NoError(t, err)

	store.Plans = racingPlans{PlanRepository: store.Plans}
	_, err = NewPlanPersister(store, nil, nopLog).Persist(ctx, "u1", testMonday(), sampleDraft())
	assert.ErrorIs(t, err, ErrPlanExists)
	assert.Equal(t, 1, countRows(t, db, "plans"))
	assert.Equal(t, 7, countRows(t, db, "workouts"))
}

func TestPlanPersister_SegmentFailureOnDayFourLeavesNothing(t *testing.T) {
	db, store := newTestStore(t)
	// Segment inserts happen on Mon, Wed, Thu, Fri...; the fourth is day_index 4.
	segments := &failingSegments{SegmentRepository: store.Segments, failOn: 4}
	store.Segments = segments

	_, err := NewPlanPersister(store, nil, nopLog).Persist(context.Background(), "u1", testMonday(), sampleDraft())
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 4, segments.calls)

	_, err = store.Plans.GetByUserAndWeek(context.Background(), "u1", testMonday())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, countRows(t, db, "plans"))
	assert.Equal(t, 0, countRows(t, db, "workouts"))
	assert.Equal(t, 0, countRows(t, db, "workout_segments"))
}

func TestPlanPersister_WorkoutFailureLeavesNothing(t *testing.T) {
	db, store := newTestStore(t)
	store.Workouts = &failingWorkouts{WorkoutRepository: store.Workouts, failOn: 6}

	_, err := NewPlanPersister(store, nil, nopLog).Persist(context.Background(), "u1", testMonday(), sampleDraft())
	require.ErrorIs(t, err, ErrPersistence)

	assert.Equal(t, 0, countRows(t, db, "plans"))
	assert.Equal(t, 0, countRows(t, db, "workouts"))
	assert.Equal(t, 0, countRows(t, db, "workout_segments"))
}

func TestPlanPersister_CompensatesChildrenWithoutCascade(t *testing.T) {
	db, store := newTestStore(t)
	store.Plans = undeletablePlans{PlanRepository: store.Plans}
	store.Segments = &failingSegments{SegmentRepository: store.Segments, failOn: 4}

	_, err := NewPlanPersister(store, nil, nopLog).Persist(context.Background(), "u1", testMonday(), sampleDraft())
	require.ErrorIs(t, err, ErrPersistence)

	// The plan survives its failed delete, but its children were removed one by one.
	assert.Equal(t, 1, countRows(t, db, "plans"))
	assert.Equal(t, 0, countRows(t, db, "workouts"))
	assert.Equal(t, 0, countRows(t, db, "workout_segments"))
}

func TestPlanPersister_TrustsListPosition(t *testing.T) {
	_, store := newTestStore(t)
	core, logs := observer.New(zapcore.WarnLevel)
	draft := sampleDraft()
	draft.Workouts[2].DayIndex = 5

	planID, err := NewPlanPersister(store, nil, logger.FromZap(zap.New(core))).Persist(context.Background(), "u1", testMonday(), draft)
	require.NoError(t, err)

	workouts, err := store.Workouts.ListByPlanID(context.Background(), planID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivitySwimming, workouts[2].ActivityType)
	assert.Equal(t, testMonday().AddDate(0, 0, 2), workouts[2].ScheduledDate)
	assert.Equal(t, 1, logs.FilterMessageSnippet("day_index disagrees").Len())
}

func TestPlanPersister_DropsRestDaySegments(t *testing.T) {
	db, store := newTestStore(t)
	draft := sampleDraft()
	draft.Workouts[1].Segments = []domain.SegmentDraft{{SegmentOrder: 1, SegmentType: "Stretch"}}

	_, err := NewPlanPersister(store, nil, nopLog).Persist(context.Background(), "u1", testMonday(), draft)
	require.NoError(t, err)
	assert.Equal(t, 10, countRows(t, db, "workout_segments"))
}

func TestPlanPersister_ResolvesExerciseNames(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	exerciseID, err := store.Exercises.Create(ctx, &domain.Exercise{Name: "Catch-up Drill"})
	require.NoError(t, err)

	draft := sampleDraft()
	draft.Workouts[2].Segments[0].ExerciseName = ptr("catch-up drill")
	draft.Workouts[3].Segments[0].ExerciseName = ptr("Butterfly Sprint")

	catalog := NewExerciseCatalog(store.Exercises, nil, 0, nopLog)
	planID, err := NewPlanPersister(store, catalog, nopLog).Persist(ctx, "u1", testMonday(), draft)
	require.NoError(t, err)

	workouts, err := store.Workouts.ListByPlanID(ctx, planID)
	require.NoError(t, err)
	segments, err := store.Segments.ListByWorkoutIDs(ctx, []string{workouts[2].ID, workouts[3].ID})
	require.NoError(t, err)
	require.Len(t, segments, 2)

	byWorkout := map[string]domain.WorkoutSegment{}
	for _, s := range segments {
		byWorkout[s.WorkoutID] = s
	}
	require.NotNil(t, byWorkout[workouts[2].ID].ExerciseID)
	assert.Equal(t, exerciseID, *byWorkout[workouts[2].ID].ExerciseID)
	assert.Nil(t, byWorkout[workouts[3].ID].ExerciseID)
}

func TestPlanPersister_RejectsShortDraft(t *testing.T) {
	db, store := newTestStore(t)
	draft := sampleDraft()
	draft.Workouts = draft.Workouts[:6]

	_, err := NewPlanPersister(store, nil, nopLog).Persist(context.Background(), "u1", testMonday(), draft)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 0, countRows(t, db, "plans"))
}
