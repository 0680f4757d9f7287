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

type sqlPlanRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) repository.PlanRepository {
	return &sqlPlanRepository{db: db}
}

func (r *sqlPlanRepository) Create(ctx context.Context, plan *domain.Plan) (string, error) {
	if plan.UserID == "" || plan.WeekStartDate.IsZero() {
		return "", errors.New("plan requires userId and weekStartDate")
	}
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	_, err := r.db.exec(ctx, `INSERT INTO plans (id, user_id, week_start_date, created_at) VALUES (?, ?, ?, ?)`,
		plan.ID, plan.UserID, formatDate(plan.WeekStartDate), formatTimestamp(plan.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("inserting plan: %w", err)
	}
	return plan.ID, nil
}

func (r *sqlPlanRepository) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*domain.Plan, error) {
	var (
		p                   domain.Plan
		weekDate, createdAt string
	)
	err := r.db.queryRow(ctx, `SELECT id, user_id, week_start_date, created_at FROM plans
		WHERE user_id = ? AND week_start_date = ?`, userID, formatDate(weekStart)).
		Scan(&p.ID, &p.UserID, &weekDate, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	if p.WeekStartDate, err = parseDate(weekDate); err != nil {
		return nil, fmt.Errorf("parsing week_start_date: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing plan created_at: %w", err)
	}
	return &p, nil
}

// Delete removes the plan; workouts and segments go with it through ON DELETE CASCADE.
func (r *sqlPlanRepository) Delete(ctx context.Context, planID string) error {
	res, err := r.db.exec(ctx, `DELETE FROM plans WHERE id = ?`, planID)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
