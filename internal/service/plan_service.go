package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/prompts"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"
)

// PlanGenerator produces a validated plan draft from a prompt.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prompt string) (*domain.PlanDraft, error)
}

// GenerateResult describes a newly stored plan.
type GenerateResult struct {
	PlanID        string
	WeekStartDate time.Time
}

// --- Service Interface ---
type PlanService interface {
	// Generate creates and stores the plan for the requested week, or for the
	// upcoming week when requested is nil.
	Generate(ctx context.Context, userID string, requested *time.Time) (*GenerateResult, error)
	GetWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.PlanDetail, error)
}

// planService implements the PlanService interface.
type planService struct {
	levels    *LevelLookup
	plans     repository.PlanRepository
	generator PlanGenerator
	persister *PlanPersister
	retriever *PlanRetriever
	timeout   time.Duration
	now       func() time.Time
	log       *logger.Logger
}

// PlanServiceDeps are the collaborators of the plan service.
type PlanServiceDeps struct {
	Store     *repository.Store
	Generator PlanGenerator
	Exercises *ExerciseCatalog // optional
	Timeout   time.Duration    // bound on the model call; zero means none
	Now       func() time.Time // defaults to time.Now
}

// NewPlanService creates a new instance of planService.
func NewPlanService(deps PlanServiceDeps, log *logger.Logger) PlanService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	var (
		names     ExerciseNameResolver
		exercises ExerciseResolver
	)
	if deps.Exercises != nil {
		names, exercises = deps.Exercises, deps.Exercises
	}
	return &planService{
		levels:    NewLevelLookup(deps.Store.Assessments, log),
		plans:     deps.Store.Plans,
		generator: deps.Generator,
		persister: NewPlanPersister(deps.Store, names, log),
		retriever: NewPlanRetriever(deps.Store, exercises, log),
		timeout:   deps.Timeout,
		now:       now,
		log:       log.With("service", "PlanService"),
	}
}

func (s *planService) Generate(ctx context.Context, userID string, requested *time.Time) (*GenerateResult, error) {
	result, err := s.generate(ctx, userID, requested)
	recordGeneration(outcome(err))
	return result, err
}

func (s *planService) generate(ctx context.Context, userID string, requested *time.Time) (*GenerateResult, error) {
	weekStart, err := ResolveWeekStart(requested, s.now())
	if err != nil {
		return nil, err
	}
	log := s.log.With("userID", userID, "weekStart", weekStart.Format(domain.DateLayout))

	swim, run := s.levels.Lookup(ctx, userID)
	if swim == nil || run == nil {
		return nil, ErrIncompletePrerequisite
	}

	if _, err := s.plans.GetByUserAndWeek(ctx, userID, weekStart); err == nil {
		return nil, ErrPlanExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checking for existing plan: %v", ErrPersistence, err)
	}

	prompt := prompts.BuildPlanPrompt(*run, *swim, weekStart)

	oracleCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		oracleCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	started := time.Now()
	draft, err := s.generator.GeneratePlan(oracleCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracle, err)
	}
	log.Info("plan draft generated", "duration", time.Since(started))

	planID, err := s.persister.Persist(ctx, userID, weekStart, draft)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{PlanID: planID, WeekStartDate: weekStart}, nil
}

func (s *planService) GetWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.PlanDetail, error) {
	monday, err := ResolveWeekStart(&weekStart, s.now())
	if err != nil {
		return nil, err
	}
	return s.retriever.Retrieve(ctx, userID, monday)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrIncompletePrerequisite):
		return "incomplete_prerequisite"
	case errors.Is(err, ErrPlanExists):
		return "conflict"
	case errors.Is(err, ErrOracle):
		return "oracle_error"
	default:
		return "persistence_error"
	}
}
