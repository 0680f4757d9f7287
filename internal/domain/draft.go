package domain

// PlanDraft is a model-generated week that passed schema validation
// but is not stored yet.
type PlanDraft struct {
	Workouts []WorkoutDraft
}

type WorkoutDraft struct {
	DayIndex     int
	ActivityType ActivityType
	Title        *string
	Segments     []SegmentDraft
}

type SegmentDraft struct {
	SegmentOrder        int
	SegmentType         string
	DurationMinutes     *float64
	DistanceMeters      *float64
	TargetIntensity     *string
	ExerciseName        *string
	Reps                *int
	RestDurationSeconds *int
	Notes               *string
}

// LevelAssessment is the model's classification of a survey.
type LevelAssessment struct {
	SwimLevel Level
	RunLevel  Level
}
