package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/repository"
	"alcyxob/virtual-coach/internal/storage"
	"context"
	"fmt"
	"time"
)

// ExerciseCatalog resolves exercise references in both directions: names from
// the model to ids when saving, ids to display details when reading.
type ExerciseCatalog struct {
	exercises repository.ExerciseRepository
	files     storage.FileStorage
	urlExpiry time.Duration
	log       *logger.Logger
}

// NewExerciseCatalog creates a catalog. Video references are passed through
// files, which turns object keys into temporary links.
func NewExerciseCatalog(exercises repository.ExerciseRepository, files storage.FileStorage, urlExpiry time.Duration, log *logger.Logger) *ExerciseCatalog {
	if files == nil {
		files = storage.NewPassThroughStorage()
	}
	return &ExerciseCatalog{
		exercises: exercises,
		files:     files,
		urlExpiry: urlExpiry,
		log:       log.With("service", "ExerciseCatalog"),
	}
}

func (c *ExerciseCatalog) LookupExerciseID(ctx context.Context, name string) (string, error) {
	ex, err := c.exercises.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	return ex.ID, nil
}

func (c *ExerciseCatalog) ResolveExercise(ctx context.Context, id string) (*domain.ExerciseRef, error) {
	ex, err := c.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("exercise %s: %w", id, err)
	}
	ref := &domain.ExerciseRef{ID: ex.ID, Name: ex.Name}
	if ex.VideoURL != "" {
		url, err := c.files.GeneratePresignedDownloadURL(ctx, ex.VideoURL, c.urlExpiry)
		if err != nil {
			// The exercise is still shown, only without its video.
			c.log.Warn("failed to sign exercise video", "exerciseID", id, "error", err)
		} else {
			ref.VideoURL = url
		}
	}
	return ref, nil
}
