package handlers

import (
	"context"
	"errors"

	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/service"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(s *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	dashboard, err := h.Service.Summary(context.Background(), currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to load dashboard", err)
		return
	}
	utils.SuccessResponse(c, "Dashboard", dashboard)
}
