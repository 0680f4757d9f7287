package mongo

import (
	"alcyxob/virtual-coach/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewStore wires every Mongo repository over one database handle.
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Assessments: NewMongoAssessmentRepository(db),
		Profiles:    NewMongoProfileRepository(db),
		Plans:       NewMongoPlanRepository(db),
		Workouts:    NewMongoWorkoutRepository(db),
		Segments:    NewMongoSegmentRepository(db),
		Exercises:   NewMongoExerciseRepository(db),
	}
}
