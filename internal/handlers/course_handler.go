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

type CourseHandler struct {
	Service   *service.CourseService
	Dashboard *service.DashboardService
}

func NewCourseHandler(s *service.CourseService, dashboard *service.DashboardService) *CourseHandler {
	return &CourseHandler{Service: s, Dashboard: dashboard}
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Service.List(context.Background(), currentUserID(c))
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list courses", err)
		return
	}
	utils.SuccessResponse(c, "Courses", courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Service.Get(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Course not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load course", err)
		return
	}
	utils.SuccessResponse(c, "Course", course)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		utils.BadRequestResponse(c, "Invalid course payload")
		return
	}
	if course.Title == "" || len(course.Lectures) == 0 {
		utils.BadRequestResponse(c, "Title and at least one lecture are required")
		return
	}
	userID := currentUserID(c)
	course.UserID = userID
	if err := h.Service.Enroll(context.Background(), &course); err != nil {
		utils.InternalErrorResponse(c, "Failed to enroll in course", err)
		return
	}
	h.Dashboard.Invalidate(context.Background(), userID)
	utils.CreatedResponse(c, "Enrolled in course", course)
}

type progressUpdate struct {
	LectureIndex *int `json:"lecture_index" binding:"required"`
}

func (h *CourseHandler) UpdateProgress(c *gin.Context) {
	var req progressUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Lecture index is required")
		return
	}
	userID := currentUserID(c)
	course, err := h.Service.UpdateProgress(context.Background(), userID, c.Param("id"), *req.LectureIndex)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Course not found")
			return
		}
		utils.BadRequestResponse(c, err.Error())
		return
	}
	h.Dashboard.Invalidate(context.Background(), userID)
	utils.SuccessResponse(c, "Progress updated", course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	userID := currentUserID(c)
	if err := h.Service.Delete(context.Background(), userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Course not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete course", err)
		return
	}
	h.Dashboard.Invalidate(context.Background(), userID)
	utils.SuccessResponse(c, "Course deleted", nil)
}

type assignCourseRequest struct {
	UserID string        `json:"user_id" binding:"required"`
	Course models.Course `json:"course" binding:"required"`
}

// AssignToUser enrolls a single fresher in a course. Admin only.
func (h *CourseHandler) AssignToUser(c *gin.Context) {
	var req assignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "User ID and course are required")
		return
	}
	if req.Course.Title == "" || len(req.Course.Lectures) == 0 {
		utils.BadRequestResponse(c, "Course title and at least one lecture are required")
		return
	}
	course, err := h.Service.AssignToUser(context.Background(), req.UserID, "", req.Course)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to assign course", err)
		return
	}
	utils.CreatedResponse(c, "Course assigned", course)
}

type bulkAssignRequest struct {
	DepartmentID string        `json:"department_id"`
	UserIDs      []string      `json:"user_ids"`
	Course       models.Course `json:"course" binding:"required"`
}

// BulkAssign enrolls a set of freshers, or a whole department, in the
// given course. Admin only.
func (h *CourseHandler) BulkAssign(c *gin.Context) {
	var req bulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Course payload is required")
		return
	}
	if req.DepartmentID == "" && len(req.UserIDs) == 0 {
		utils.BadRequestResponse(c, "A department ID or a list of user IDs is required")
		return
	}
	if req.Course.Title == "" || len(req.Course.Lectures) == 0 {
		utils.BadRequestResponse(c, "Course title and at least one lecture are required")
		return
	}
	reports, err := h.Service.BulkAssign(context.Background(), req.DepartmentID, req.UserIDs, req.Course)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to assign course", err)
		return
	}
	assigned := 0
	for _, r := range reports {
		if r.Status == "assigned" {
			assigned++
		}
	}
	utils.SuccessResponse(c, "Course assignment finished", gin.H{
		"total":    len(reports),
		"assigned": assigned,
		"failed":   len(reports) - assigned,
		"reports":  reports,
	})
}

// Statistics returns the admin overview of course progress.
func (h *CourseHandler) Statistics(c *gin.Context) {
	stats, err := h.Service.Statistics(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to compute statistics", err)
		return
	}
	utils.SuccessResponse(c, "Course statistics", stats)
}
