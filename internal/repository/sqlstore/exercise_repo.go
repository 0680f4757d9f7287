package sqlstore

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type sqlExerciseRepository struct {
	db *DB
}

func NewExerciseRepository(db *DB) repository.ExerciseRepository {
	return &sqlExerciseRepository{db: db}
}

func (r *sqlExerciseRepository) Create(ctx context.Context, e *domain.Exercise) (string, error) {
	if strings.TrimSpace(e.Name) == "" {
		return "", errors.New("exercise name is required")
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	var video *string
	if e.VideoURL != "" {
		video = &e.VideoURL
	}
	_, err := r.db.exec(ctx, `INSERT INTO exercises (id, name, video_url, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, nullString(video), formatTimestamp(e.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("inserting exercise: %w", err)
	}
	return e.ID, nil
}

func (r *sqlExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	return r.scanOne(r.db.queryRow(ctx, `SELECT id, name, video_url, created_at FROM exercises WHERE id = ?`, id))
}

func (r *sqlExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.scanOne(r.db.queryRow(ctx, `SELECT id, name, video_url, created_at FROM exercises
		WHERE LOWER(name) = LOWER(?)`, strings.TrimSpace(name)))
}

func (r *sqlExerciseRepository) scanOne(row *sql.Row) (*domain.Exercise, error) {
	var (
		e         domain.Exercise
		video     sql.NullString
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.Name, &video, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	e.VideoURL = video.String
	var err error
	if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing exercise created_at: %w", err)
	}
	return &e, nil
}
