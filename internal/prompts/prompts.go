// Package prompts renders the instructions sent to the generative model.
// The JSON shapes fixed here are what package oracle parses.
package prompts

import (
	"alcyxob/virtual-coach/internal/domain"
	"fmt"
	"strings"
	"time"
)

// PlanContract is the reply format requested for weekly plans.
const PlanContract = `Respond with a single JSON object and nothing else. The object has exactly one key, "workouts", whose value is a list of exactly 7 workout objects, one per day, in day order.
Each workout object has these keys:
- "day_index": integer 0-6, where 0 is Monday and 6 is Sunday.
- "activity_type": one of "Swimming", "Running", "Rest".
- "title": short string, optional.
- "segments": list of segment objects, optional. Omit it or use an empty list for "Rest".
Each segment object has these keys:
- "segment_order": integer starting at 1, increasing within the workout.
- "segment_type": string such as "Warm-up", "Main Set", "Drill", "Cool-down".
- "duration_minutes": number, optional.
- "distance_meters": number, optional. Give duration_minutes, distance_meters or both.
- "target_intensity": string such as "Easy", "Moderate", "Hard", "Zone 2".
- "exercise_name": string naming a drill or exercise, optional.
- "reps": integer, optional.
- "rest_duration_seconds": integer, optional.
- "notes": string, optional.
Use null for any optional value you leave out. Do not add other keys.`

// AssessmentContract is the reply format requested for level assessments.
const AssessmentContract = `Respond with a single JSON object and nothing else, with exactly two keys:
- "swim_level": one of "Beginner", "Intermediate", "Advanced".
- "run_level": one of "Beginner", "Intermediate", "Advanced".`

// BuildPlanPrompt renders the weekly plan request. The output depends only on its arguments.
func BuildPlanPrompt(runLevel, swimLevel domain.Level, weekStart time.Time) string {
	var b strings.Builder
	b.WriteString("You are an experienced running and swimming coach.\n")
	fmt.Fprintf(&b, "Create a training plan for the week starting Monday %s.\n", weekStart.Format(domain.DateLayout))
	fmt.Fprintf(&b, "The athlete's running level is %s and swimming level is %s.\n", runLevel, swimLevel)
	b.WriteString("Balance running and swimming sessions across the week, include at least one rest day, " +
		"and keep the volume appropriate for each level.\n\n")
	b.WriteString(PlanContract)
	return b.String()
}

// BuildAssessmentPrompt renders the level classification request for onboarding answers.
func BuildAssessmentPrompt(data domain.OnboardingData) string {
	var b strings.Builder
	b.WriteString("You are an experienced running and swimming coach assessing a new athlete.\n")
	b.WriteString("Classify the athlete's swimming and running levels from these onboarding answers:\n")
	fmt.Fprintf(&b, "- Running experience: %s\n", data.RunExperience)
	fmt.Fprintf(&b, "- Typical run duration: %s\n", data.RunDuration)
	fmt.Fprintf(&b, "- Swimming experience: %s\n", data.SwimExperience)
	fmt.Fprintf(&b, "- Typical swim duration: %s\n", data.SwimDuration)
	fmt.Fprintf(&b, "- Primary goal: %s\n\n", data.PrimaryGoal)
	b.WriteString(AssessmentContract)
	return b.String()
}
