package domain

import "time"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// DaysPerPlan is the fixed number of workouts in a weekly plan.
const DaysPerPlan = 7

// Plan is one user's training week. WeekStartDate is always a Monday.
type Plan struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	WeekStartDate time.Time `bson:"weekStartDate" json:"weekStartDate"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// PlanDetail is a plan with its ordered workouts, each with ordered segments.
type PlanDetail struct {
	Plan     Plan
	Workouts []WorkoutDetail
}

// WorkoutDetail is a workout with its segments in segment_order.
type WorkoutDetail struct {
	Workout  Workout
	Segments []SegmentDetail
}

// SegmentDetail is a segment plus its exercise, when one was resolved.
type SegmentDetail struct {
	Segment  WorkoutSegment
	Exercise *ExerciseRef
}
