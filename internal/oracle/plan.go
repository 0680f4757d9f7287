package oracle

import (
	"alcyxob/virtual-coach/internal/domain"
	"fmt"
)

// ParsePlan decodes a model reply into a PlanDraft, collecting every schema violation.
func ParsePlan(raw string) (*domain.PlanDraft, error) {
	root, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	c.onlyKeys("$", root, "workouts")

	var items []any
	switch v := root["workouts"].(type) {
	case []any:
		items = v
		if len(items) != domain.DaysPerPlan {
			c.addf("$.workouts: expected %d workouts, got %d", domain.DaysPerPlan, len(items))
		}
	case nil:
		c.addf("$.workouts: required")
	default:
		c.addf("$.workouts: expected list, got %s", kindOf(v))
	}

	draft := &domain.PlanDraft{Workouts: make([]domain.WorkoutDraft, 0, len(items))}
	for i, item := range items {
		path := fmt.Sprintf("$.workouts[%d]", i)
		obj, ok := c.object(path, item)
		if !ok {
			continue
		}
		draft.Workouts = append(draft.Workouts, parseWorkout(c, path, obj))
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return draft, nil
}

func parseWorkout(c *checker, path string, obj map[string]any) domain.WorkoutDraft {
	c.onlyKeys(path, obj, "day_index", "activity_type", "title", "segments")

	var w domain.WorkoutDraft
	if day, ok := c.requiredInt(path, obj, "day_index"); ok {
		if day < 0 || day >= domain.DaysPerPlan {
			c.addf("%s.day_index: expected 0-6, got %d", path, day)
		}
		w.DayIndex = day
	}
	if activity, ok := c.requiredString(path, obj, "activity_type"); ok {
		w.ActivityType = domain.ActivityType(activity)
		if !w.ActivityType.Valid() {
			c.addf("%s.activity_type: expected Swimming, Running or Rest, got %q", path, activity)
		}
	}
	w.Title = c.optionalString(path, obj, "title")

	prevOrder := 0
	for j, item := range c.optionalList(path, obj, "segments") {
		segPath := fmt.Sprintf("%s.segments[%d]", path, j)
		segObj, ok := c.object(segPath, item)
		if !ok {
			continue
		}
		seg := parseSegment(c, segPath, segObj)
		if seg.SegmentOrder > 0 {
			if seg.SegmentOrder <= prevOrder {
				c.addf("%s.segment_order: %d does not follow %d", segPath, seg.SegmentOrder, prevOrder)
			}
			prevOrder = seg.SegmentOrder
		}
		w.Segments = append(w.Segments, seg)
	}
	return w
}

func parseSegment(c *checker, path string, obj map[string]any) domain.SegmentDraft {
	c.onlyKeys(path, obj,
		"segment_order", "segment_type", "duration_minutes", "distance_meters",
		"target_intensity", "exercise_name", "reps", "rest_duration_seconds", "notes")

	var s domain.SegmentDraft
	if order, ok := c.requiredInt(path, obj, "segment_order"); ok {
		if order < 1 {
			c.addf("%s.segment_order: expected positive integer, got %d", path, order)
		} else {
			s.SegmentOrder = order
		}
	}
	if segType, ok := c.requiredString(path, obj, "segment_type"); ok {
		if segType == "" {
			c.addf("%s.segment_type: must not be empty", path)
		}
		s.SegmentType = segType
	}
	s.DurationMinutes = c.optionalNonNegativeNumber(path, obj, "duration_minutes")
	s.DistanceMeters = c.optionalNonNegativeNumber(path, obj, "distance_meters")
	s.TargetIntensity = c.optionalString(path, obj, "target_intensity")
	s.ExerciseName = c.optionalString(path, obj, "exercise_name")
	s.Reps = c.optionalNonNegativeInt(path, obj, "reps")
	s.RestDurationSeconds = c.optionalNonNegativeInt(path, obj, "rest_duration_seconds")
	s.Notes = c.optionalString(path, obj, "notes")
	return s
}
