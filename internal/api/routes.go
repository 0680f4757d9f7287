package api

import (
	"alcyxob/virtual-coach/internal/logger"
	"alcyxob/virtual-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a gin engine with recovery, access logging, metrics and CORS.
func NewRouter(log *logger.Logger, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), Metrics())
	if len(corsOrigins) > 0 {
		router.Use(CORS(corsOrigins))
	}
	return router
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	assessmentService service.AssessmentService,
	log *logger.Logger,
) {
	planHandler := NewPlanHandler(planService, log)
	assessmentHandler := NewAssessmentHandler(assessmentService, log)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := router.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		protected.POST("/assessment", assessmentHandler.SubmitAssessment)

		planGroup := protected.Group("/plans")
		{
			// POST /plans/generate
			planGroup.POST("/generate", planHandler.GeneratePlan)
			// GET /plans/week/2025-03-03
			planGroup.GET("/week/:date", planHandler.GetWeekPlan)
		}
	}
}
