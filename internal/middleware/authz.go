package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/models"
)

// RestrictTo allows only the listed roles past; must run after Protect.
func RestrictTo(allowed ...string) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get(CurrentUserKey)
		if !exists {
			unauthorized(c)
			return
		}
		user, ok := v.(*models.User)
		if !ok {
			unauthorized(c)
			return
		}
		if _, ok := allowedSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}
