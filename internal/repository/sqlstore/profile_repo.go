package sqlstore

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqlProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) repository.ProfileRepository {
	return &sqlProfileRepository{db: db}
}

// SetAssessmentCompleted upserts the profile row.
func (r *sqlProfileRepository) SetAssessmentCompleted(ctx context.Context, userID string, completed bool) error {
	if userID == "" {
		return errors.New("profile update requires userId")
	}
	_, err := r.db.exec(ctx, `INSERT INTO profiles (id, assessment_completed, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET assessment_completed = excluded.assessment_completed, updated_at = excluded.updated_at`,
		userID, completed, formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

func (r *sqlProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		p         domain.Profile
		updatedAt string
	)
	err := r.db.queryRow(ctx, `SELECT id, assessment_completed, updated_at FROM profiles WHERE id = ?`, userID).
		Scan(&p.UserID, &p.AssessmentCompleted, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing profile updated_at: %w", err)
	}
	return &p, nil
}
