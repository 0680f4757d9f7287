package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ExerciseResolver looks up the exercise a segment refers to.
type ExerciseResolver interface {
	ResolveExercise(ctx context.Context, id string) (*domain.ExerciseRef, error)
}

// PlanRetriever assembles a stored plan into one nested document.
type PlanRetriever struct {
	plans     repository.PlanRepository
	workouts  repository.WorkoutRepository
	segments  repository.SegmentRepository
	exercises ExerciseResolver
	log       *logger.Logger
}

// NewPlanRetriever creates a retriever. exercises may be nil, in which case
// segments are returned without exercise details.
func NewPlanRetriever(store *repository.Store, exercises ExerciseResolver, log *logger.Logger) *PlanRetriever {
	return &PlanRetriever{
		plans:     store.Plans,
		workouts:  store.Workouts,
		segments:  store.Segments,
		exercises: exercises,
		log:       log.With("service", "PlanRetriever"),
	}
}

// Retrieve returns the plan of userID for the week starting at weekStart, with
// workouts in date order and segments in segment order.
// Errors are ErrPlanNotFound or ErrRetrieval.
func (r *PlanRetriever) Retrieve(ctx context.Context, userID string, weekStart time.Time) (*domain.PlanDetail, error) {
	plan, err := r.plans.GetByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("%w: loading plan: %v", ErrRetrieval, err)
	}

	workouts, err := r.workouts.ListByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading workouts: %v", ErrRetrieval, err)
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].ScheduledDate.Before(workouts[j].ScheduledDate)
	})

	detail := &domain.PlanDetail{Plan: *plan, Workouts: make([]domain.WorkoutDetail, 0, len(workouts))}
	if len(workouts) == 0 {
		return detail, nil
	}

	ids := make([]string, len(workouts))
	for i := range workouts {
		ids[i] = workouts[i].ID
	}
	segments, err := r.segments.ListByWorkoutIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: loading segments: %v", ErrRetrieval, err)
	}
	byWorkout := make(map[string][]domain.WorkoutSegment, len(workouts))
	for _, s := range segments {
		byWorkout[s.WorkoutID] = append(byWorkout[s.WorkoutID], s)
	}

	resolved := make(map[string]*domain.ExerciseRef)
	for _, w := range workouts {
		segs := byWorkout[w.ID]
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].SegmentOrder < segs[j].SegmentOrder })

		wd := domain.WorkoutDetail{Workout: w, Segments: make([]domain.SegmentDetail, 0, len(segs))}
		for _, s := range segs {
			wd.Segments = append(wd.Segments, domain.SegmentDetail{Segment: s, Exercise: r.resolve(ctx, resolved, s.ExerciseID)})
		}
		detail.Workouts = append(detail.Workouts, wd)
	}
	return detail, nil
}

// resolve looks each exercise id up once per request. Unresolvable ids yield nil.
func (r *PlanRetriever) resolve(ctx context.Context, memo map[string]*domain.ExerciseRef, id *string) *domain.ExerciseRef {
	if id == nil || *id == "" || r.exercises == nil {
		return nil
	}
	if ref, ok := memo[*id]; ok {
		return ref
	}
	ref, err := r.exercises.ResolveExercise(ctx, *id)
	if err != nil {
		r.log.Warn("could not resolve exercise", "exerciseID", *id, "error", err)
		ref = nil
	}
	memo[*id] = ref
	return ref
}
