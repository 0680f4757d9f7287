package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"alcyxob/virtual-coach/internal/repository/sqlstore"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

func ptr[T any](v T) *T { return &v }

// testMonday is 2025-03-03.
func testMonday() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) (*sqlstore.DB, *repository.Store) {
	t.Helper()
	db, err := sqlstore.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, sqlstore.NewStore(db)
}

func countRows(t *testing.T, db *sqlstore.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// sampleDraft is a week with segments on every non-rest day:
// Mon Running/2, Tue Rest, Wed Swimming/1, Thu Running/1, Fri Swimming/2, Sat Running/1, Sun Swimming/3.
func sampleDraft() *domain.PlanDraft {
	seg := func(order int, segType string) domain.SegmentDraft {
		return domain.SegmentDraft{SegmentOrder: order, SegmentType: segType, DurationMinutes: ptr(float64(10 * order))}
	}
	return &domain.PlanDraft{Workouts: []domain.WorkoutDraft{
		{DayIndex: 0, ActivityType: domain.ActivityRunning, Title: ptr("Easy run"), Segments: []domain.SegmentDraft{
			seg(1, "Warm-up"),
			{SegmentOrder: 2, SegmentType: "Main Set", DistanceMeters: ptr(5000.0), TargetIntensity: ptr("Zone 2"), Notes: ptr("steady")},
		}},
		{DayIndex: 1, ActivityType: domain.ActivityRest},
		{DayIndex: 2, ActivityType: domain.ActivitySwimming, Segments: []domain.SegmentDraft{
			{SegmentOrder: 1, SegmentType: "Drill", DistanceMeters: ptr(200.0), Reps: ptr(4), RestDurationSeconds: ptr(20)},
		}},
		{DayIndex: 3, ActivityType: domain.ActivityRunning, Segments: []domain.SegmentDraft{seg(1, "Tempo")}},
		{DayIndex: 4, ActivityType: domain.ActivitySwimming, Segments: []domain.SegmentDraft{seg(1, "Warm-up"), seg(2, "Main Set")}},
		{DayIndex: 5, ActivityType: domain.ActivityRunning, Segments: []domain.SegmentDraft{seg(1, "Long run")}},
		{DayIndex: 6, ActivityType: domain.ActivitySwimming, Segments: []domain.SegmentDraft{
			seg(1, "Warm-up"), seg(2, "Main Set"), seg(3, "Cool-down"),
		}},
	}}
}

// failingSegments fails the Nth CreateMany call after writing the first segment,
// like a bulk insert that dies halfway.
type failingSegments struct {
	repository.SegmentRepository
	failOn int
	calls  int
}

func (f *failingSegments) CreateMany(ctx context.Context, segments []domain.WorkoutSegment) error {
	f.calls++
	if f.calls == f.failOn {
		if err := f.SegmentRepository.CreateMany(ctx, segments[:1]); err != nil {
			return err
		}
		return errInjected
	}
	return f.SegmentRepository.CreateMany(ctx, segments)
}

type failingWorkouts struct {
	repository.WorkoutRepository
	failOn int
	calls  int
}

func (f *failingWorkouts) Create(ctx context.Context, w *domain.Workout) (string, error) {
	f.calls++
	if f.calls == f.failOn {
		return "", errInjected
	}
	return f.WorkoutRepository.Create(ctx, w)
}

// undeletablePlans keeps plan rows on Delete, standing in for a failed compensation.
type undeletablePlans struct {
	repository.PlanRepository
}

func (undeletablePlans) Delete(context.Context, string) error { return errInjected }

type fakeGenerator struct {
	draft *domain.PlanDraft
	err   error
	calls int
	wait  bool
}

func (f *fakeGenerator) GeneratePlan(ctx context.Context, _ string) (*domain.PlanDraft, error) {
	f.calls++
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.draft, f.err
}

var nopLog = logger.NewNop()
