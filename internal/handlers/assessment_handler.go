package handlers

import (
	"context"
	"errors"

	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/service"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	Service   *service.AssessmentService
	Dashboard *service.DashboardService
}

func NewAssessmentHandler(s *service.AssessmentService, dashboard *service.DashboardService) *AssessmentHandler {
	return &AssessmentHandler{Service: s, Dashboard: dashboard}
}

func (h *AssessmentHandler) List(c *gin.Context) {
	assessments, err := h.Service.List(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list assessments", err)
		return
	}
	utils.SuccessResponse(c, "Assessments", assessments)
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	var assessment models.Assessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		utils.BadRequestResponse(c, "Invalid assessment payload")
		return
	}
	if assessment.CourseID == "" || assessment.CourseTitle == "" {
		utils.BadRequestResponse(c, "Course ID and title are required")
		return
	}
	if err := h.Service.Create(context.Background(), &assessment); err != nil {
		utils.InternalErrorResponse(c, "Failed to create assessment", err)
		return
	}
	utils.CreatedResponse(c, "Assessment created", assessment)
}

// Start opens an assessment attempt for the course in the URL.
func (h *AssessmentHandler) Start(c *gin.Context) {
	courseID := c.Param("courseId")
	started, err := h.Service.Start(context.Background(), currentUserID(c), courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "No assessment exists for this course")
			return
		}
		utils.InternalErrorResponse(c, "Failed to start assessment", err)
		return
	}
	utils.SuccessResponse(c, "Assessment started", started)
}

type assessmentSubmission struct {
	Answers []int `json:"answers" binding:"required"`
}

func (h *AssessmentHandler) Submit(c *gin.Context) {
	attemptID := c.Param("attemptId")
	var req assessmentSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Answers are required")
		return
	}
	userID := currentUserID(c)
	result, err := h.Service.Submit(context.Background(), userID, attemptID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptCompleted):
			utils.ConflictResponse(c, "Attempt already completed")
		case errors.Is(err, service.ErrAnswerCountMismatch):
			utils.BadRequestResponse(c, "Answer count does not match question count")
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFoundResponse(c, "Attempt not found")
		default:
			utils.InternalErrorResponse(c, "Failed to submit assessment", err)
		}
		return
	}
	h.Dashboard.Invalidate(context.Background(), userID)
	utils.SuccessResponse(c, "Assessment graded", result)
}

func (h *AssessmentHandler) Certificates(c *gin.Context) {
	certs, err := h.Service.Certificates(context.Background(), currentUserID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load certifications", err)
		return
	}
	utils.SuccessResponse(c, "Certifications", certs)
}
