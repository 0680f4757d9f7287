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

type sqlWorkoutRepository struct {
	db *DB
}

func NewWorkoutRepository(db *DB) repository.WorkoutRepository {
	return &sqlWorkoutRepository{db: db}
}

func (r *sqlWorkoutRepository) Create(ctx context.Context, w *domain.Workout) (string, error) {
	if w.PlanID == "" || w.UserID == "" || !w.ActivityType.Valid() {
		return "", errors.New("workout requires planId, userId and a valid activityType")
	}
	w.ID = uuid.NewString()
	w.CreatedAt = time.Now().UTC()
	if w.Status == "" {
		w.Status = domain.WorkoutStatusScheduled
	}

	_, err := r.db.exec(ctx, `INSERT INTO workouts
		(id, plan_id, user_id, scheduled_date, activity_type, title, status, user_modified_activity, user_modified_details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.PlanID, w.UserID, formatDate(w.ScheduledDate), string(w.ActivityType), nullString(w.Title),
		w.Status, w.UserModifiedActivity, w.UserModifiedDetails, formatTimestamp(w.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("inserting workout: %w", err)
	}
	return w.ID, nil
}

func (r *sqlWorkoutRepository) ListByPlanID(ctx context.Context, planID string) ([]domain.Workout, error) {
	rows, err := r.db.query(ctx, `SELECT id, plan_id, user_id, scheduled_date, activity_type, title, status,
		user_modified_activity, user_modified_details, created_at
		FROM workouts WHERE plan_id = ? ORDER BY scheduled_date ASC, created_at ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		var (
			w                    domain.Workout
			scheduled, createdAt string
			activity             string
			title                sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.PlanID, &w.UserID, &scheduled, &activity, &title, &w.Status,
			&w.UserModifiedActivity, &w.UserModifiedDetails, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.ActivityType = domain.ActivityType(activity)
		w.Title = stringPtr(title)
		if w.ScheduledDate, err = parseDate(scheduled); err != nil {
			return nil, fmt.Errorf("parsing scheduled_date: %w", err)
		}
		if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing workout created_at: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	return workouts, nil
}

func (r *sqlWorkoutRepository) Delete(ctx context.Context, workoutID string) error {
	res, err := r.db.exec(ctx, `DELETE FROM workouts WHERE id = ?`, workoutID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
