package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// @Summary      Register an account
// @Description  Creates an unverified account and emails a one-time code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	userID, err := h.authService.Register(&req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated,
		"User registered. Please verify your account with the OTP sent to your email",
		gin.H{"userId": userID})
}

// @Summary      Verify an account
// @Description  Checks the OTP, marks the account verified and returns a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      models.VerifyOTPRequest  true  "User id and OTP"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]interface{}
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	token, user, err := h.authService.VerifyOTP(req.UserID, req.OTP)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Account verified successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// @Summary      Log in
// @Description  Authenticates by email or phone; unverified accounts get a fresh OTP instead of a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Identifier and password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	token, user, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// @Summary      Request a password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      models.ForgotPasswordRequest  true  "Email or phone"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]interface{}
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	userID, err := h.authService.ForgotPassword(req.Identifier)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK,
		"Password reset OTP has been sent to your email",
		gin.H{"userId": userID})
}

// @Summary      Reset the password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      models.ResetPasswordRequest  true  "User id, OTP and new password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	if err := h.authService.ResetPassword(req.UserID, req.OTP, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Password reset successful", nil)
}

// @Summary      Current account
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user.Profile()})
}
