package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ExerciseNameResolver maps a model-supplied exercise name to a catalog id.
// It returns repository.ErrNotFound for names that are not in the catalog.
type ExerciseNameResolver interface {
	LookupExerciseID(ctx context.Context, name string) (string, error)
}

// PlanPersister writes a validated draft as one plan, seven workouts and their
// segments. The writes are not atomic; on failure everything written so far is
// removed again.
type PlanPersister struct {
	plans    repository.PlanRepository
	workouts repository.WorkoutRepository
	segments repository.SegmentRepository
	names    ExerciseNameResolver
	log      *logger.Logger
}

// NewPlanPersister creates a persister. names may be nil, leaving exercise
// references empty.
func NewPlanPersister(store *repository.Store, names ExerciseNameResolver, log *logger.Logger) *PlanPersister {
	return &PlanPersister{
		plans:    store.Plans,
		workouts: store.Workouts,
		segments: store.Segments,
		names:    names,
		log:      log.With("service", "PlanPersister"),
	}
}

// Persist stores draft for userID and the week starting at weekStart and
// returns the new plan id. Errors are ErrPlanExists or ErrPersistence.
func (p *PlanPersister) Persist(ctx context.Context, userID string, weekStart time.Time, draft *domain.PlanDraft) (string, error) {
	if draft == nil || len(draft.Workouts) != domain.DaysPerPlan {
		return "", fmt.Errorf("%w: plan must have %d workouts", ErrPersistence, domain.DaysPerPlan)
	}
	log := p.log.With("userID", userID, "weekStart", weekStart.Format(domain.DateLayout))

	if _, err := p.plans.GetByUserAndWeek(ctx, userID, weekStart); err == nil {
		return "", ErrPlanExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%w: checking for existing plan: %v", ErrPersistence, err)
	}

	plan := &domain.Plan{UserID: userID, WeekStartDate: weekStart}
	planID, err := p.plans.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrPlanExists
		}
		return "", fmt.Errorf("%w: inserting plan: %v", ErrPersistence, err)
	}

	tx := newSaga(log.With("planID", planID))
	tx.register("insert plan", func(ctx context.Context) error {
		return p.plans.Delete(ctx, planID)
	})

	for i, wd := range draft.Workouts {
		if err := p.persistWorkout(ctx, tx, log, userID, planID, weekStart, i, wd); err != nil {
			tx.compensate(ctx)
			return "", fmt.Errorf("%w: day %d: %v", ErrPersistence, i, err)
		}
	}

	log.Info("plan saved", "planID", planID)
	return planID, nil
}

func (p *PlanPersister) persistWorkout(ctx context.Context, tx *saga, log *logger.Logger, userID, planID string, weekStart time.Time, position int, wd domain.WorkoutDraft) error {
	if wd.DayIndex != position {
		log.Warn("model day_index disagrees with list position, using position",
			"dayIndex", wd.DayIndex, "position", position)
	}

	workout := &domain.Workout{
		PlanID:        planID,
		UserID:        userID,
		ScheduledDate: weekStart.AddDate(0, 0, position),
		ActivityType:  wd.ActivityType,
		Title:         wd.Title,
		Status:        domain.WorkoutStatusScheduled,
	}
	var workoutID string
	err := tx.step(ctx, "insert workout",
		func(ctx context.Context) (err error) {
			workoutID, err = p.workouts.Create(ctx, workout)
			return err
		},
		func(ctx context.Context) error {
			if err := p.segments.DeleteByWorkoutID(ctx, workoutID); err != nil {
				return err
			}
			return p.workouts.Delete(ctx, workoutID)
		})
	if err != nil {
		return err
	}

	if len(wd.Segments) == 0 {
		return nil
	}
	if wd.ActivityType == domain.ActivityRest {
		log.Warn("dropping segments of rest day", "position", position, "segments", len(wd.Segments))
		return nil
	}

	segments := make([]domain.WorkoutSegment, len(wd.Segments))
	for j, sd := range wd.Segments {
		segments[j] = domain.WorkoutSegment{
			WorkoutID:           workoutID,
			SegmentOrder:        sd.SegmentOrder,
			SegmentType:         sd.SegmentType,
			DurationMinutes:     sd.DurationMinutes,
			DistanceMeters:      sd.DistanceMeters,
			TargetIntensity:     sd.TargetIntensity,
			ExerciseID:          p.exerciseID(ctx, log, sd.ExerciseName),
			Reps:                sd.Reps,
			RestDurationSeconds: sd.RestDurationSeconds,
			Notes:               sd.Notes,
		}
	}

	tx.register("insert segments", func(ctx context.Context) error {
		return p.segments.DeleteByWorkoutID(ctx, workoutID)
	})
	return tx.step(ctx, "insert segments", func(ctx context.Context) error {
		return p.segments.CreateMany(ctx, segments)
	}, nil)
}

// exerciseID resolves name through the catalog; misses leave the reference empty.
func (p *PlanPersister) exerciseID(ctx context.Context, log *logger.Logger, name *string) *string {
	if p.names == nil || name == nil || strings.TrimSpace(*name) == "" {
		return nil
	}
	id, err := p.names.LookupExerciseID(ctx, *name)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn("exercise lookup failed", "exercise", *name, "error", err)
		}
		return nil
	}
	return &id
}
