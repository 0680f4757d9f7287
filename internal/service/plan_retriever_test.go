package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixStorage struct{}

func (prefixStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

type countingResolver struct {
	calls map[string]int
}

func (c *countingResolver) ResolveExercise(_ context.Context, id string) (*domain.ExerciseRef, error) {
	c.calls[id]++
	if id == "missing" {
		return nil, repository.ErrNotFound
	}
	return &domain.ExerciseRef{ID: id, Name: "Exercise " + id}, nil
}

// shuffledWorkouts lists workouts newest first, to check that ordering does not rely on the backend.
type shuffledWorkouts struct {
	repository.WorkoutRepository
}

func (s shuffledWorkouts) ListByPlanID(ctx context.Context, planID string) ([]domain.Workout, error) {
	workouts, err := s.WorkoutRepository.ListByPlanID(ctx, planID)
	for i, j := 0, len(workouts)-1; i < j; i, j = i+1, j-1 {
		workouts[i], workouts[j] = workouts[j], workouts[i]
	}
	return workouts, err
}

type brokenSegments struct {
	repository.SegmentRepository
}

func (brokenSegments) ListByWorkoutIDs(context.Context, []string) ([]domain.WorkoutSegment, error) {
	return nil, errInjected
}

func TestPlanRetriever_RoundTrip(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	draft := sampleDraft()

	planID, err := NewPlanPersister(store, nil, nopLog).Persist(ctx, "u1", testMonday(), draft)
	require.NoError(t, err)

	store.Workouts = shuffledWorkouts{WorkoutRepository: store.Workouts}
	detail, err := NewPlanRetriever(store, nil, nopLog).Retrieve(ctx, "u1", testMonday())
	require.NoError(t, err)

	assert.Equal(t, planID, detail.Plan.ID)
	assert.Equal(t, "u1", detail.Plan.UserID)
	assert.Equal(t, testMonday(), detail.Plan.WeekStartDate)
	require.Len(t, detail.Workouts, 7)

	for i, w := range detail.Workouts {
		want := draft.Workouts[i]
		assert.Equal(t, testMonday().AddDate(0, 0, i), w.Workout.ScheduledDate)
		assert.Equal(t, want.ActivityType, w.Workout.ActivityType)
		assert.Equal(t, want.Title, w.Workout.Title)
		require.Len(t, w.Segments, len(want.Segments), "day %d", i)
		for j, s := range w.Segments {
			ws := want.Segments[j]
			assert.Equal(t, j+1, s.Segment.SegmentOrder)
			assert.Equal(t, ws.SegmentType, s.Segment.SegmentType)
			assert.Equal(t, ws.DurationMinutes, s.Segment.DurationMinutes)
			assert.Equal(t, ws.DistanceMeters, s.Segment.DistanceMeters)
			assert.Equal(t, ws.TargetIntensity, s.Segment.TargetIntensity)
			assert.Equal(t, ws.Reps, s.Segment.Reps)
			assert.Equal(t, ws.RestDurationSeconds, s.Segment.RestDurationSeconds)
			assert.Equal(t, ws.Notes, s.Segment.Notes)
			assert.Nil(t, s.Exercise)
		}
	}
}

func TestPlanRetriever_NotFound(t *testing.T) {
	_, store := newTestStore(t)
	_, err := NewPlanRetriever(store, nil, nopLog).Retrieve(context.Background(), "u1", testMonday())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanRetriever_EmptyPlan(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	_, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u1", WeekStartDate: testMonday()})
	require.NoError(t, err)

	detail, err := NewPlanRetriever(store, nil, nopLog).Retrieve(ctx, "u1", testMonday())
	require.NoError(t, err)
	require.NotNil(t, detail.Workouts)
	assert.Empty(t, detail.Workouts)
}

func TestPlanRetriever_StorageFailure(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	_, err := NewPlanPersister(store, nil, nopLog).Persist(ctx, "u1", testMonday(), sampleDraft())
	require.NoError(t, err)

	store.Segments = brokenSegments{SegmentRepository: store.Segments}
	_, err = NewPlanRetriever(store, nil, nopLog).Retrieve(ctx, "u1", testMonday())
	assert.ErrorIs(t, err, ErrRetrieval)
}

func TestPlanRetriever_ResolvesExercisesOncePerRequest(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	planID, err := store.Plans.Create(ctx, &domain.Plan{UserID: "u1", WeekStartDate: testMonday()})
	require.NoError(t, err)
	workoutID, err := store.Workouts.Create(ctx, &domain.Workout{
		PlanID: planID, UserID: "u1", ScheduledDate: testMonday(), ActivityType: domain.ActivitySwimming,
	})
	require.NoError(t, err)

	// Ids here are not in the catalog table, so work on a store without foreign keys.
	segments := &memorySegments{byWorkout: map[string][]domain.WorkoutSegment{workoutID: {
		{ID: "s3", WorkoutID: workoutID, SegmentOrder: 3, SegmentType: "Main", ExerciseID: ptr("missing")},
		{ID: "s1", WorkoutID: workoutID, SegmentOrder: 1, SegmentType: "Drill", ExerciseID: ptr("kick")},
		{ID: "s2", WorkoutID: workoutID, SegmentOrder: 2, SegmentType: "Drill", ExerciseID: ptr("kick")},
	}}}
	store.Segments = segments
	resolver := &countingResolver{calls: map[string]int{}}

	detail, err := NewPlanRetriever(store, resolver, nopLog).Retrieve(ctx, "u1", testMonday())
	require.NoError(t, err)
	require.Len(t, detail.Workouts, 1)

	segs := detail.Workouts[0].Segments
	require.Len(t, segs, 3)
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{segs[0].Segment.ID, segs[1].Segment.ID, segs[2].Segment.ID})
	require.NotNil(t, segs[0].Exercise)
	assert.Equal(t, "Exercise kick", segs[0].Exercise.Name)
	assert.Same(t, segs[0].Exercise, segs[1].Exercise)
	assert.Nil(t, segs[2].Exercise)
	assert.Equal(t, map[string]int{"kick": 1, "missing": 1}, resolver.calls)
}

func TestExerciseCatalog_ResolveExercise(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	keyID, err := store.Exercises.Create(ctx, &domain.Exercise{Name: "Flutter Kick", VideoURL: "swim/flutter.mp4"})
	require.NoError(t, err)
	urlID, err := store.Exercises.Create(ctx, &domain.Exercise{Name: "Strides", VideoURL: "https://videos.example.com/strides.mp4"})
	require.NoError(t, err)

	catalog := NewExerciseCatalog(store.Exercises, prefixStorage{}, time.Minute, nopLog)

	ref, err := catalog.ResolveExercise(ctx, keyID)
	require.NoError(t, err)
	assert.Equal(t, &domain.ExerciseRef{ID: keyID, Name: "Flutter Kick", VideoURL: "https://signed.example.com/swim/flutter.mp4"}, ref)

	plain := NewExerciseCatalog(store.Exercises, nil, 0, nopLog)
	ref, err = plain.ResolveExercise(ctx, urlID)
	require.NoError(t, err)
	assert.Equal(t, "https://videos.example.com/strides.mp4", ref.VideoURL)

	_, err = catalog.ResolveExercise(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	id, err := catalog.LookupExerciseID(ctx, "FLUTTER kick")
	require.NoError(t, err)
	assert.Equal(t, keyID, id)
}

type memorySegments struct {
	repository.SegmentRepository
	byWorkout map[string][]domain.WorkoutSegment
}

func (m *memorySegments) ListByWorkoutIDs(_ context.Context, ids []string) ([]domain.WorkoutSegment, error) {
	var out []domain.WorkoutSegment
	for _, id := range ids {
		out = append(out, m.byWorkout[id]...)
	}
	return out, nil
}
