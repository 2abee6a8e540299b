package handlers

import (
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and stores the caller's
// identity on the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ClaimsFromRequest(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or missing token")
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminRequired allows only admin tokens through. It runs after
// AuthRequired on the admin route group.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}
