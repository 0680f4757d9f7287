package domain

import "time"

// ActivityType is the discipline of a day.
type ActivityType string

const (
	ActivitySwimming ActivityType = "Swimming"
	ActivityRunning  ActivityType = "Running"
	ActivityRest     ActivityType = "Rest"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivitySwimming, ActivityRunning, ActivityRest:
		return true
	}
	return false
}

// WorkoutStatusScheduled is the status of every freshly generated workout.
const WorkoutStatusScheduled = "Scheduled"

// Workout is a single day within a Plan.
type Workout struct {
	ID                   string       `bson:"_id" json:"id"`
	PlanID               string       `bson:"planId" json:"planId"`
	UserID               string       `bson:"userId" json:"userId"`
	ScheduledDate        time.Time    `bson:"scheduledDate" json:"scheduledDate"`
	ActivityType         ActivityType `bson:"activityType" json:"activityType"`
	Title                *string      `bson:"title,omitempty" json:"title,omitempty"`
	Status               string       `bson:"status" json:"status"`
	UserModifiedActivity bool         `bson:"userModifiedActivity" json:"userModifiedActivity"`
	UserModifiedDetails  bool         `bson:"userModifiedDetails" json:"userModifiedDetails"`
	CreatedAt            time.Time    `bson:"createdAt" json:"createdAt"`
}

// WorkoutSegment is one ordered block of a workout (warm-up, interval, drill...).
// ExerciseID is a weak reference into the exercise catalog.
type WorkoutSegment struct {
	ID                  string   `bson:"_id" json:"id"`
	WorkoutID           string   `bson:"workoutId" json:"workoutId"`
	SegmentOrder        int      `bson:"segmentOrder" json:"segmentOrder"`
	SegmentType         string   `bson:"segmentType" json:"segmentType"`
	DurationMinutes     *float64 `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	DistanceMeters      *float64 `bson:"distanceMeters,omitempty" json:"distanceMeters,omitempty"`
	TargetIntensity     *string  `bson:"targetIntensity,omitempty" json:"targetIntensity,omitempty"`
	ExerciseID          *string  `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Reps                *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	RestDurationSeconds *int     `bson:"restDurationSeconds,omitempty" json:"restDurationSeconds,omitempty"`
	Notes               *string  `bson:"notes,omitempty" json:"notes,omitempty"`
}
