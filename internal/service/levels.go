package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"errors"
)

// LevelLookup reads the fitness levels of a user's latest assessment.
type LevelLookup struct {
	assessments repository.AssessmentRepository
	log         *logger.Logger
}

func NewLevelLookup(assessments repository.AssessmentRepository, log *logger.Logger) *LevelLookup {
	return &LevelLookup{assessments: assessments, log: log.With("service", "LevelLookup")}
}

// Lookup returns nil for a level that is unknown. Storage errors are logged and
// reported the same way as a missing assessment.
func (l *LevelLookup) Lookup(ctx context.Context, userID string) (swim, run *domain.Level) {
	a, err := l.assessments.GetLatestByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			l.log.Error("failed to read fitness assessment", "userID", userID, "error", err)
		}
		return nil, nil
	}
	if a.SwimLevel.Valid() {
		level := a.SwimLevel
		swim = &level
	}
	if a.RunLevel.Valid() {
		level := a.RunLevel
		run = &level
	}
	return swim, run
}
