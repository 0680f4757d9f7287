// Package oracle asks a generative model for plans and level assessments and
// turns its replies into validated domain values.
package oracle

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"context"
	"fmt"
	"strings"
)

// rawReplyLogLimit bounds how much of a rejected reply is logged.
const rawReplyLogLimit = 500

// PlanOracle generates weekly plan drafts.
type PlanOracle struct {
	gen TextGenerator
	log *logger.Logger
}

func NewPlanOracle(gen TextGenerator, log *logger.Logger) *PlanOracle {
	return &PlanOracle{gen: gen, log: log.With("component", "PlanOracle")}
}

// GeneratePlan sends prompt once and validates the reply into a PlanDraft.
// Errors are ErrUnavailable, ErrFormat or a *SchemaError.
func (o *PlanOracle) GeneratePlan(ctx context.Context, prompt string) (*domain.PlanDraft, error) {
	raw, err := complete(ctx, o.gen, prompt)
	if err != nil {
		o.log.Error("model call failed", "error", err)
		recordFailure("plan", err)
		return nil, err
	}
	draft, err := ParsePlan(raw)
	if err != nil {
		o.log.Error("rejected plan reply", "error", err, "reply", excerpt(raw, rawReplyLogLimit))
		recordFailure("plan", err)
		return nil, err
	}
	return draft, nil
}

// AssessmentOracle classifies onboarding answers into levels.
type AssessmentOracle struct {
	gen TextGenerator
	log *logger.Logger
}

func NewAssessmentOracle(gen TextGenerator, log *logger.Logger) *AssessmentOracle {
	return &AssessmentOracle{gen: gen, log: log.With("component", "AssessmentOracle")}
}

// AssessLevels sends prompt once and validates the reply into a LevelAssessment.
func (o *AssessmentOracle) AssessLevels(ctx context.Context, prompt string) (*domain.LevelAssessment, error) {
	raw, err := complete(ctx, o.gen, prompt)
	if err != nil {
		o.log.Error("model call failed", "error", err)
		recordFailure("assessment", err)
		return nil, err
	}
	levels, err := ParseAssessment(raw)
	if err != nil {
		o.log.Error("rejected assessment reply", "error", err, "reply", excerpt(raw, rawReplyLogLimit))
		recordFailure("assessment", err)
		return nil, err
	}
	return levels, nil
}

func complete(ctx context.Context, gen TextGenerator, prompt string) (string, error) {
	raw, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUnavailable)
	}
	return raw, nil
}
