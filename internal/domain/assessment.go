package domain

import "time"

// Level is a derived skill level for one discipline.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// OnboardingData holds the raw answers of the onboarding survey.
type OnboardingData struct {
	RunExperience  string `bson:"runExperience" json:"runExperience"`
	RunDuration    string `bson:"runDuration" json:"runDuration"`
	SwimExperience string `bson:"swimExperience" json:"swimExperience"`
	SwimDuration   string `bson:"swimDuration" json:"swimDuration"`
	PrimaryGoal    string `bson:"primaryGoal" json:"primaryGoal"`
}

// FitnessAssessment is one submitted survey plus the levels derived from it.
// It is immutable once stored.
type FitnessAssessment struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Answers   OnboardingData `bson:"answers" json:"answers"`
	RunLevel  Level          `bson:"runLevel" json:"runLevel"`
	SwimLevel Level          `bson:"swimLevel" json:"swimLevel"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

// Profile carries per-user flags owned by this service.
type Profile struct {
	UserID              string    `bson:"_id" json:"userId"`
	AssessmentCompleted bool      `bson:"assessmentCompleted" json:"assessmentCompleted"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}
