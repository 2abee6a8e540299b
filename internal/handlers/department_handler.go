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

type DepartmentHandler struct {
	Service *service.DepartmentService
}

func NewDepartmentHandler(s *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{Service: s}
}

func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.Service.List(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list departments", err)
		return
	}
	utils.SuccessResponse(c, "Departments", departments)
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	dept, err := h.Service.Get(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Department not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load department", err)
		return
	}
	utils.SuccessResponse(c, "Department", dept)
}

// Create finds or creates the department by name, so repeated creates of
// the same name return the same record instead of duplicating it.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var dept models.Department
	if err := c.ShouldBindJSON(&dept); err != nil || dept.Name == "" {
		utils.BadRequestResponse(c, "Department name is required")
		return
	}
	created, err := h.Service.FindOrCreate(context.Background(), &dept)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to create department", err)
		return
	}
	utils.CreatedResponse(c, "Department ready", created)
}

func (h *DepartmentHandler) Members(c *gin.Context) {
	members, err := h.Service.Members(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Department not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to list members", err)
		return
	}
	utils.SuccessResponse(c, "Department members", members)
}

type membershipRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *DepartmentHandler) AssignUser(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "User ID is required")
		return
	}
	if err := h.Service.AssignUser(context.Background(), c.Param("id"), req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Department or user not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to assign user", err)
		return
	}
	utils.SuccessResponse(c, "User assigned to department", nil)
}

func (h *DepartmentHandler) RemoveUser(c *gin.Context) {
	if err := h.Service.RemoveUser(context.Background(), c.Param("id"), c.Param("userId")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User is not a member of this department")
			return
		}
		utils.InternalErrorResponse(c, "Failed to remove user", err)
		return
	}
	utils.SuccessResponse(c, "User removed from department", nil)
}

// Recount rebuilds the member counter from the actual member list.
func (h *DepartmentHandler) Recount(c *gin.Context) {
	count, err := h.Service.Recount(context.Background(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "Department not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to recount members", err)
		return
	}
	utils.SuccessResponse(c, "Member count rebuilt", gin.H{"member_count": count})
}
