package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/services"
	"github.com/ataousCode/agro-backend/internal/utils"
)

const (
	// CurrentUserKey holds the loaded *models.User for the request.
	CurrentUserKey = "currentUser"
)

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Not authorized to access this route",
	})
}

// Protect verifies the Bearer token and loads the account it references.
// The request fails when the token is missing, invalid, expired, or the
// account no longer exists.
func Protect(users services.UserService, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			unauthorized(c)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			unauthorized(c)
			return
		}

		claims, err := utils.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil || user == nil {
			unauthorized(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
