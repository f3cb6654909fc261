package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmycourt/models"
)

// AdminOnlyMiddleware rejects callers whose token does not carry the admin
// role. Must run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
