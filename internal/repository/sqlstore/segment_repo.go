package sqlstore

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type sqlSegmentRepository struct {
	db *DB
}

func NewSegmentRepository(db *DB) repository.SegmentRepository {
	return &sqlSegmentRepository{db: db}
}

const segmentColumns = `id, workout_id, segment_order, segment_type, duration_minutes, distance_meters,
	target_intensity, exercise_id, reps, rest_duration_seconds, notes`

// CreateMany inserts the segments with one multi-row INSERT so they land together.
func (r *sqlSegmentRepository) CreateMany(ctx context.Context, segments []domain.WorkoutSegment) error {
	if len(segments) == 0 {
		return nil
	}

	const cols = 11
	values := make([]string, 0, len(segments))
	args := make([]any, 0, len(segments)*cols)
	for i := range segments {
		s := &segments[i]
		if s.WorkoutID == "" || s.SegmentType == "" {
			return errors.New("segment requires workoutId and segmentType")
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		values = append(values, "("+placeholders(cols)+")")
		args = append(args,
			s.ID, s.WorkoutID, s.SegmentOrder, s.SegmentType,
			nullFloat(s.DurationMinutes), nullFloat(s.DistanceMeters),
			nullString(s.TargetIntensity), nullString(s.ExerciseID),
			nullInt(s.Reps), nullInt(s.RestDurationSeconds), nullString(s.Notes),
		)
	}

	query := `INSERT INTO workout_segments (` + segmentColumns + `) VALUES ` + strings.Join(values, ", ")
	if _, err := r.db.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting segments: %w", err)
	}
	return nil
}

func (r *sqlSegmentRepository) ListByWorkoutIDs(ctx context.Context, workoutIDs []string) ([]domain.WorkoutSegment, error) {
	segments := []domain.WorkoutSegment{}
	if len(workoutIDs) == 0 {
		return segments, nil
	}

	args := make([]any, len(workoutIDs))
	for i, id := range workoutIDs {
		args[i] = id
	}
	rows, err := r.db.query(ctx, `SELECT `+segmentColumns+` FROM workout_segments
		WHERE workout_id IN (`+placeholders(len(workoutIDs))+`)
		ORDER BY workout_id ASC, segment_order ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s                            domain.WorkoutSegment
			duration, distance           sql.NullFloat64
			intensity, exerciseID, notes sql.NullString
			reps, restSeconds            sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.SegmentOrder, &s.SegmentType, &duration, &distance,
			&intensity, &exerciseID, &reps, &restSeconds, &notes); err != nil {
			return nil, fmt.Errorf("scanning segment: %w", err)
		}
		s.DurationMinutes = floatPtr(duration)
		s.DistanceMeters = floatPtr(distance)
		s.TargetIntensity = stringPtr(intensity)
		s.ExerciseID = stringPtr(exerciseID)
		s.Reps = intPtr(reps)
		s.RestDurationSeconds = intPtr(restSeconds)
		s.Notes = stringPtr(notes)
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating segments: %w", err)
	}
	return segments, nil
}

func (r *sqlSegmentRepository) DeleteByWorkoutID(ctx context.Context, workoutID string) error {
	if _, err := r.db.exec(ctx, `DELETE FROM workout_segments WHERE workout_id = ?`, workoutID); err != nil {
		return fmt.Errorf("deleting segments: %w", err)
	}
	return nil
}
