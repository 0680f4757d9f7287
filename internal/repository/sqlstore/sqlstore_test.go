package sqlstore

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func monday() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestRebind(t *testing.T) {
	pg := &DB{dialect: DialectPostgres}
	lite := &DB{dialect: DialectSQLite}

	q := `SELECT id FROM plans WHERE user_id = ? AND week_start_date = ?`
	assert.Equal(t, `SELECT id FROM plans WHERE user_id = $1 AND week_start_date = $2`, pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
	assert.Equal(t, "?, ?, ?", placeholders(3))
	assert.Equal(t, "", placeholders(0))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestPlanRepository_CreateGetDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPlanRepository(db)

	plan := &domain.Plan{UserID: "user-1", WeekStartDate: monday()}
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByUserAndWeek(ctx, "user-1", monday())
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.WeekStartDate.Equal(monday()))

	_, err = repo.GetByUserAndWeek(ctx, "user-2", monday())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Plan{UserID: "user-1", WeekStartDate: monday()})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestPlanDelete_CascadesToWorkoutsAndSegments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewStore(db)

	planID, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u", WeekStartDate: monday()})
	require.NoError(t, err)
	workoutID, err := store.Workouts.Create(ctx, &domain.Workout{
		PlanID: planID, UserID: "u", ScheduledDate: monday(), ActivityType: domain.ActivityRunning,
	})
	require.NoError(t, err)
	require.NoError(t, store.Segments.CreateMany(ctx, []domain.WorkoutSegment{
		{WorkoutID: workoutID, SegmentOrder: 1, SegmentType: "Warm-up"},
	}))

	require.NoError(t, store.Plans.Delete(ctx, planID))

	workouts, err := store.Workouts.ListByPlanID(ctx, planID)
	require.NoError(t, err)
	assert.Empty(t, workouts)
	segments, err := store.Segments.ListByWorkoutIDs(ctx, []string{workoutID})
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestWorkoutRepository_OrderedByScheduledDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewStore(db)

	planID, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u", WeekStartDate: monday()})
	require.NoError(t, err)

	for _, offset := range []int{3, 0, 6, 1} {
		_, err := store.Workouts.Create(ctx, &domain.Workout{
			PlanID: planID, UserID: "u", ScheduledDate: monday().AddDate(0, 0, offset),
			ActivityType: domain.ActivityRest, Title: ptr("Day"),
		})
		require.NoError(t, err)
	}

	workouts, err := store.Workouts.ListByPlanID(ctx, planID)
	require.NoError(t, err)
	require.Len(t, workouts, 4)
	for i := 1; i < len(workouts); i++ {
		assert.True(t, workouts[i-1].ScheduledDate.Before(workouts[i].ScheduledDate))
	}
	assert.Equal(t, domain.WorkoutStatusScheduled, workouts[0].Status)
	assert.False(t, workouts[0].UserModifiedActivity)
	require.NotNil(t, workouts[0].Title)
	assert.Equal(t, "Day", *workouts[0].Title)

	_, err = store.Workouts.Create(ctx, &domain.Workout{PlanID: planID, UserID: "u", ActivityType: "Cycling"})
	assert.Error(t, err)
}

func TestSegmentRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewStore(db)

	exerciseID, err := store.Exercises.Create(ctx, &domain.Exercise{Name: "Strides"})
	require.NoError(t, err)
	planID, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u", WeekStartDate: monday()})
	require.NoError(t, err)
	workoutID, err := store.Workouts.Create(ctx, &domain.Workout{
		PlanID: planID, UserID: "u", ScheduledDate: monday(), ActivityType: domain.ActivityRunning,
	})
	require.NoError(t, err)

	require.NoError(t, store.Segments.CreateMany(ctx, []domain.WorkoutSegment{
		{WorkoutID: workoutID, SegmentOrder: 2, SegmentType: "Main", DistanceMeters: ptr(5000.0),
			TargetIntensity: ptr("Zone 2"), ExerciseID: &exerciseID, Reps: ptr(4), RestDurationSeconds: ptr(60)},
		{WorkoutID: workoutID, SegmentOrder: 1, SegmentType: "Warm-up", DurationMinutes: ptr(10.0), Notes: ptr("easy")},
	}))

	segments, err := store.Segments.ListByWorkoutIDs(ctx, []string{workoutID})
	require.NoError(t, err)
	require.Len(t, segments, 2)

	first, second := segments[0], segments[1]
	assert.Equal(t, 1, first.SegmentOrder)
	assert.Equal(t, 10.0, *first.DurationMinutes)
	assert.Nil(t, first.DistanceMeters)
	assert.Equal(t, "easy", *first.Notes)
	assert.Nil(t, first.ExerciseID)

	assert.Equal(t, 2, second.SegmentOrder)
	assert.Equal(t, 5000.0, *second.DistanceMeters)
	assert.Equal(t, "Zone 2", *second.TargetIntensity)
	assert.Equal(t, exerciseID, *second.ExerciseID)
	assert.Equal(t, 4, *second.Reps)
	assert.Equal(t, 60, *second.RestDurationSeconds)

	require.NoError(t, store.Segments.DeleteByWorkoutID(ctx, workoutID))
	segments, err = store.Segments.ListByWorkoutIDs(ctx, []string{workoutID})
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestSegmentRepository_RejectsUnknownWorkout(t *testing.T) {
	db := newTestDB(t)
	err := NewSegmentRepository(db).CreateMany(context.Background(), []domain.WorkoutSegment{
		{WorkoutID: "missing", SegmentOrder: 1, SegmentType: "Main"},
	})
	assert.Error(t, err, "foreign key should reject orphan segments")
}

func TestExerciseRepository_GetByNameIgnoresCase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewExerciseRepository(db)

	id, err := repo.Create(ctx, &domain.Exercise{Name: "Catch-up Drill", VideoURL: "videos/catch-up.mp4"})
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, "  catch-UP drill ")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "videos/catch-up.mp4", got.VideoURL)

	_, err = repo.Create(ctx, &domain.Exercise{Name: "CATCH-UP DRILL"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAssessmentRepository_LatestWins(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAssessmentRepository(db)

	_, err := repo.GetLatestByUserID(ctx, "u")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, &domain.FitnessAssessment{UserID: "u", RunLevel: domain.LevelBeginner,
		SwimLevel: domain.LevelBeginner, CreatedAt: base})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.FitnessAssessment{UserID: "u", RunLevel: domain.LevelAdvanced,
		SwimLevel: domain.LevelIntermediate, CreatedAt: base.Add(time.Hour),
		Answers: domain.OnboardingData{PrimaryGoal: "triathlon"}})
	require.NoError(t, err)

	got, err := repo.GetLatestByUserID(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelAdvanced, got.RunLevel)
	assert.Equal(t, domain.LevelIntermediate, got.SwimLevel)
	assert.Equal(t, "triathlon", got.Answers.PrimaryGoal)
}

func TestProfileRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	require.NoError(t, repo.SetAssessmentCompleted(ctx, "u", false))
	require.NoError(t, repo.SetAssessmentCompleted(ctx, "u", true))

	p, err := repo.GetByUserID(ctx, "u")
	require.NoError(t, err)
	assert.True(t, p.AssessmentCompleted)

	_, err = repo.GetByUserID(ctx, "other")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
