package handlers

import (
	"context"
	"errors"

	"hexaboard-service/internal/service"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Email and password are required")
		return
	}
	user, token, err := h.Service.Login(context.Background(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid email or password")
			return
		}
		utils.InternalErrorResponse(c, "Login failed", err)
		return
	}
	utils.SuccessResponse(c, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Service.Users.FindByID(context.Background(), currentUserID(c))
	if err != nil {
		utils.NotFoundResponse(c, "User not found")
		return
	}
	utils.SuccessResponse(c, "User profile", user)
}
