package sqlstore

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type sqlAssessmentRepository struct {
	db *DB
}

// NewAssessmentRepository creates an assessment repository backed by SQL.
func NewAssessmentRepository(db *DB) repository.AssessmentRepository {
	return &sqlAssessmentRepository{db: db}
}

func (r *sqlAssessmentRepository) Create(ctx context.Context, a *domain.FitnessAssessment) (string, error) {
	if a.UserID == "" {
		return "", errors.New("assessment requires userId")
	}
	a.ID = uuid.NewString()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.exec(ctx, `INSERT INTO fitness_assessments
		(id, user_id, run_experience, run_duration, swim_experience, swim_duration, primary_goal, run_level, swim_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.UserID,
		a.Answers.RunExperience,
		a.Answers.RunDuration,
		a.Answers.SwimExperience,
		a.Answers.SwimDuration,
		a.Answers.PrimaryGoal,
		string(a.RunLevel),
		string(a.SwimLevel),
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("inserting assessment: %w", err)
	}
	return a.ID, nil
}

func (r *sqlAssessmentRepository) GetLatestByUserID(ctx context.Context, userID string) (*domain.FitnessAssessment, error) {
	row := r.db.queryRow(ctx, `SELECT id, user_id, run_experience, run_duration, swim_experience, swim_duration,
		primary_goal, run_level, swim_level, created_at
		FROM fitness_assessments WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID)

	var (
		a                   domain.FitnessAssessment
		runLevel, swimLevel string
		createdAt           string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Answers.RunExperience, &a.Answers.RunDuration,
		&a.Answers.SwimExperience, &a.Answers.SwimDuration, &a.Answers.PrimaryGoal,
		&runLevel, &swimLevel, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}
	a.RunLevel = domain.Level(runLevel)
	a.SwimLevel = domain.Level(swimLevel)
	if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing assessment created_at: %w", err)
	}
	return &a, nil
}
