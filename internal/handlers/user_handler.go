package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user.Profile()})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	updated, err := h.service.UpdateProfile(user.ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated", gin.H{"user": updated.Profile()})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	if err := h.service.UpdatePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Password updated", nil)
}

// ===== admin =====

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.service.List(limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"users": users})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	user, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		fail(c, apperr.NotFound("User not found"))
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	user, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		fail(c, apperr.NotFound("User not found"))
		return
	}

	var body struct {
		Name     string `json:"name"`
		Address  string `json:"address"`
		PostCode string `json:"post_code"`
		Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failBind(c, err)
		return
	}
	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Address != "" {
		user.Address = body.Address
	}
	if body.PostCode != "" {
		user.PostCode = body.PostCode
	}
	if body.Role != "" {
		user.Role = body.Role
	}

	if err := h.service.AdminUpdate(user); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated", gin.H{"user": user})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if err := h.service.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted", nil)
}
