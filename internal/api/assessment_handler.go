package api

import (
	"alcyxob/virtual-coach/internal/domain"
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AssessmentHandler holds the assessment service dependency.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
	log               *logger.Logger
}

func NewAssessmentHandler(assessmentService service.AssessmentService, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, log: log.With("handler", "AssessmentHandler")}
}

// OnboardingRequest is the onboarding survey submitted by the client.
type OnboardingRequest struct {
	RunExperience  string `json:"runExperience" binding:"required"`
	RunDuration    string `json:"runDuration" binding:"required"`
	SwimExperience string `json:"swimExperience" binding:"required"`
	SwimDuration   string `json:"swimDuration" binding:"required"`
	PrimaryGoal    string `json:"primaryGoal" binding:"required"`
}

type AssessmentResponse struct {
	SwimLevel string `json:"swim_level"`
	RunLevel  string `json:"run_level"`
	Message   string `json:"message,omitempty"`
}

// SubmitAssessment godoc
// @Summary Submit the onboarding survey
// @Description Classifies the user's swimming and running levels and stores the assessment.
// @Tags Assessment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param survey body OnboardingRequest true "Onboarding answers"
// @Success 200 {object} AssessmentResponse "Assessed levels"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /assessment [post]
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	assessment, err := h.assessmentService.Assess(c.Request.Context(), userID, domain.OnboardingData{
		RunExperience:  req.RunExperience,
		RunDuration:    req.RunDuration,
		SwimExperience: req.SwimExperience,
		SwimDuration:   req.SwimDuration,
		PrimaryGoal:    req.PrimaryGoal,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("assessment failed", "userID", userID, "error", err)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process assessment.")
		return
	}

	c.JSON(http.StatusOK, AssessmentResponse{
		SwimLevel: string(assessment.SwimLevel),
		RunLevel:  string(assessment.RunLevel),
		Message:   "Assessment completed successfully.",
	})
}
