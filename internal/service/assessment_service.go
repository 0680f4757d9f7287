package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/prompts"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"fmt"
	"strings"
)

// LevelAssessor classifies onboarding answers into fitness levels.
type LevelAssessor interface {
	AssessLevels(ctx context.Context, prompt string) (*domain.LevelAssessment, error)
}

// --- Service Interface ---
type AssessmentService interface {
	// Assess classifies the answers, stores the assessment and marks the
	// user's onboarding as complete.
	Assess(ctx context.Context, userID string, answers domain.OnboardingData) (*domain.FitnessAssessment, error)
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	profiles    repository.ProfileRepository
	assessor    LevelAssessor
	log         *logger.Logger
}

func NewAssessmentService(store *repository.Store, assessor LevelAssessor, log *logger.Logger) AssessmentService {
	return &assessmentService{
		assessments: store.Assessments,
		profiles:    store.Profiles,
		assessor:    assessor,
		log:         log.With("service", "AssessmentService"),
	}
}

func (s *assessmentService) Assess(ctx context.Context, userID string, answers domain.OnboardingData) (*domain.FitnessAssessment, error) {
	if err := validateOnboarding(answers); err != nil {
		return nil, err
	}

	levels, err := s.assessor.AssessLevels(ctx, prompts.BuildAssessmentPrompt(answers))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	assessment := &domain.FitnessAssessment{
		UserID:    userID,
		Answers:   answers,
		RunLevel:  levels.RunLevel,
		SwimLevel: levels.SwimLevel,
	}
	id, err := s.assessments.Create(ctx, assessment)
	if err != nil {
		return nil, fmt.Errorf("%w: inserting assessment: %v", ErrPersistence, err)
	}
	assessment.ID = id

	if err := s.profiles.SetAssessmentCompleted(ctx, userID, true); err != nil {
		s.log.Error("failed to mark assessment completed", "userID", userID, "error", err)
	}
	s.log.Info("assessment stored", "userID", userID, "swimLevel", levels.SwimLevel, "runLevel", levels.RunLevel)
	return assessment, nil
}

func validateOnboarding(a domain.OnboardingData) error {
	fields := []struct {
		name, value string
	}{
		{"runExperience", a.RunExperience},
		{"runDuration", a.RunDuration},
		{"swimExperience", a.SwimExperience},
		{"swimDuration", a.SwimDuration},
		{"primaryGoal", a.PrimaryGoal},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return invalidInput("missing onboarding answers: " + strings.Join(missing, ", "))
	}
	return nil
}
