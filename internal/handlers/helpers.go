package handlers

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/middleware"
	"github.com/ataousCode/agro-backend/internal/models"
)

// respond writes the success envelope shared by every endpoint.
func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps an error to the failure envelope. Only apperr errors carry a
// status; anything else is an unexpected 500 with the stack outside of
// release mode.
func fail(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		body := gin.H{"success": false, "message": ae.Message}
		if ae.Data != nil {
			body["data"] = ae.Data
		}
		c.JSON(ae.Status, body)
		return
	}

	body := gin.H{"success": false, "message": err.Error()}
	if gin.IsDebugging() {
		body["stack"] = string(debug.Stack())
	} else {
		body["stack"] = nil
	}
	c.JSON(http.StatusInternalServerError, body)
}

func failBind(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}

// reaching a protected handler without a loaded user means broken route wiring
var errMissingUser = apperr.Unauthorized("Not authorized to access this route")

// currentUser returns the account stored by the Protect middleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
