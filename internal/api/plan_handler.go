package api

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/service"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
	log         *logger.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, log: log.With("handler", "PlanHandler")}
}

// --- DTOs for API (Data Transfer Objects) ---

// GeneratePlanRequest is the optional body of POST /plans/generate.
type GeneratePlanRequest struct {
	WeekStartDate *string `json:"week_start_date"`
}

type GeneratePlanResponse struct {
	PlanID        string `json:"plan_id"`
	WeekStartDate string `json:"week_start_date"`
	Message       string `json:"message"`
}

type ExerciseResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	VideoURL string `json:"video_url,omitempty"`
}

type SegmentResponse struct {
	ID                  string            `json:"id"`
	SegmentOrder        int               `json:"segment_order"`
	SegmentType         string            `json:"segment_type"`
	DurationMinutes     *float64          `json:"duration_minutes"`
	DistanceMeters      *float64          `json:"distance_meters"`
	TargetIntensity     *string           `json:"target_intensity"`
	Reps                *int              `json:"reps"`
	RestDurationSeconds *int              `json:"rest_duration_seconds"`
	Notes               *string           `json:"notes"`
	Exercise            *ExerciseResponse `json:"exercise"`
}

type WorkoutResponse struct {
	ID                   string            `json:"id"`
	ScheduledDate        string            `json:"scheduled_date"`
	ActivityType         string            `json:"activity_type"`
	Title                *string           `json:"title"`
	Status               string            `json:"status"`
	UserModifiedActivity bool              `json:"user_modified_activity"`
	UserModifiedDetails  bool              `json:"user_modified_details"`
	Segments             []SegmentResponse `json:"segments"`
}

// PlanResponse is the nested weekly plan document.
type PlanResponse struct {
	PlanID        string            `json:"plan_id"`
	UserID        string            `json:"user_id"`
	WeekStartDate string            `json:"week_start_date"`
	Workouts      []WorkoutResponse `json:"workouts"`
}

// MapPlanDetailToResponse converts a domain.PlanDetail to the PlanResponse DTO.
func MapPlanDetailToResponse(d *domain.PlanDetail) PlanResponse {
	resp := PlanResponse{
		PlanID:        d.Plan.ID,
		UserID:        d.Plan.UserID,
		WeekStartDate: formatDate(d.Plan.WeekStartDate),
		Workouts:      make([]WorkoutResponse, len(d.Workouts)),
	}
	for i, w := range d.Workouts {
		resp.Workouts[i] = mapWorkoutToResponse(w)
	}
	return resp
}

func mapWorkoutToResponse(w domain.WorkoutDetail) WorkoutResponse {
	resp := WorkoutResponse{
		ID:                   w.Workout.ID,
		ScheduledDate:        formatDate(w.Workout.ScheduledDate),
		ActivityType:         string(w.Workout.ActivityType),
		Title:                w.Workout.Title,
		Status:               w.Workout.Status,
		UserModifiedActivity: w.Workout.UserModifiedActivity,
		UserModifiedDetails:  w.Workout.UserModifiedDetails,
		Segments:             make([]SegmentResponse, len(w.Segments)),
	}
	for i, s := range w.Segments {
		seg := s.Segment
		resp.Segments[i] = SegmentResponse{
			ID:                  seg.ID,
			SegmentOrder:        seg.SegmentOrder,
			SegmentType:         seg.SegmentType,
			DurationMinutes:     seg.DurationMinutes,
			DistanceMeters:      seg.DistanceMeters,
			TargetIntensity:     seg.TargetIntensity,
			Reps:                seg.Reps,
			RestDurationSeconds: seg.RestDurationSeconds,
			Notes:               seg.Notes,
		}
		if s.Exercise != nil {
			resp.Segments[i].Exercise = &ExerciseResponse{ID: s.Exercise.ID, Name: s.Exercise.Name, VideoURL: s.Exercise.VideoURL}
		}
	}
	return resp
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a weekly training plan
// @Description Asks the model for a plan for the given Monday, or the upcoming one, and stores it.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GeneratePlanRequest false "Week to plan"
// @Success 200 {object} GeneratePlanResponse "Plan created"
// @Failure 400 {object} gin.H "Invalid date or assessment not completed"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Plan already exists for this week"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var requested *time.Time
	if req.WeekStartDate != nil {
		week, err := time.Parse(domain.DateLayout, *req.WeekStartDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "week_start_date must be a date in YYYY-MM-DD format")
			return
		}
		requested = &week
	}

	result, err := h.planService.Generate(c.Request.Context(), userID, requested)
	if err != nil {
		h.handleError(c, err, "Failed to generate plan.")
		return
	}

	c.JSON(http.StatusOK, GeneratePlanResponse{
		PlanID:        result.PlanID,
		WeekStartDate: formatDate(result.WeekStartDate),
		Message:       "Plan generated successfully.",
	})
}

// GetWeekPlan godoc
// @Summary Get the plan of a week
// @Description Returns the stored plan starting on the given Monday with its workouts and segments.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param date path string true "Week start date (YYYY-MM-DD, a Monday)"
// @Success 200 {object} PlanResponse "Weekly plan"
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "No plan for this week"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans/week/{date} [get]
func (h *PlanHandler) GetWeekPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	week, err := service.ParseWeekStart(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.planService.GetWeek(c.Request.Context(), userID, week)
	if err != nil {
		h.handleError(c, err, "Failed to retrieve plan.")
		return
	}

	c.JSON(http.StatusOK, MapPlanDetailToResponse(detail))
}

// handleError maps service errors to status codes. Server-side causes are
// logged and replaced by internalMsg.
func (h *PlanHandler) handleError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrIncompletePrerequisite):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error(internalMsg, "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, internalMsg)
	}
}
