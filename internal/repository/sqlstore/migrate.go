package sqlstore

import (
	"context"
	"fmt"
)

// Statements are idempotent and valid in both postgres and sqlite.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS fitness_assessments (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		run_experience   TEXT NOT NULL,
		run_duration     TEXT NOT NULL,
		swim_experience  TEXT NOT NULL,
		swim_duration    TEXT NOT NULL,
		primary_goal     TEXT NOT NULL,
		run_level        TEXT NOT NULL,
		swim_level       TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fitness_assessments_user ON fitness_assessments(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id                   TEXT PRIMARY KEY,
		assessment_completed BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		video_url  TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exercises_name ON exercises(LOWER(name))`,

	`CREATE TABLE IF NOT EXISTS plans (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		week_start_date TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_user_week ON plans(user_id, week_start_date)`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id                     TEXT PRIMARY KEY,
		plan_id                TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		user_id                TEXT NOT NULL,
		scheduled_date         TEXT NOT NULL,
		activity_type          TEXT NOT NULL CHECK(activity_type IN ('Swimming', 'Running', 'Rest')),
		title                  TEXT,
		status                 TEXT NOT NULL DEFAULT 'Scheduled',
		user_modified_activity BOOLEAN NOT NULL DEFAULT FALSE,
		user_modified_details  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at             TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workouts_plan ON workouts(plan_id, scheduled_date)`,

	`CREATE TABLE IF NOT EXISTS workout_segments (
		id                    TEXT PRIMARY KEY,
		workout_id            TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		segment_order         INTEGER NOT NULL,
		segment_type          TEXT NOT NULL,
		duration_minutes      DOUBLE PRECISION,
		distance_meters       DOUBLE PRECISION,
		target_intensity      TEXT,
		exercise_id           TEXT REFERENCES exercises(id) ON DELETE SET NULL,
		reps                  INTEGER,
		rest_duration_seconds INTEGER,
		notes                 TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workout_segments_workout ON workout_segments(workout_id, segment_order)`,
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
