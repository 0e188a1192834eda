package middleware

import (
	"net/http"
	"strings"

	"backend/internal/auth"
	"backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the admin read paths. It fails closed: missing, invalid
// or non-admin bearer tokens all produce 403 with no data leakage.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		role, err := auth.ParseRole(tokenString)
		if err != nil || !strings.EqualFold(role, models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set("userRole", strings.ToLower(role))
		c.Next()
	}
}
