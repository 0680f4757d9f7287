package sqlstore

import "alcyxob/virtual-coach/internal/repository"

// NewStore wires every SQL repository over one connection pool.
func NewStore(db *DB) *repository.Store {
	return &repository.Store{
		Assessments: NewAssessmentRepository(db),
		Profiles:    NewProfileRepository(db),
		Plans:       NewPlanRepository(db),
		Workouts:    NewWorkoutRepository(db),
		Segments:    NewSegmentRepository(db),
		Exercises:   NewExerciseRepository(db),
	}
}
