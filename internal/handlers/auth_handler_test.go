package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
)

type fakeAuthService struct {
	registerID  int
	registerErr error
	verifyToken string
	verifyUser  *models.PublicUser
	verifyErr   error
	loginToken  string
	loginUser   *models.PublicUser
	loginErr    error
}

func (f *fakeAuthService) Register(req *models.RegisterRequest) (int, error) {
	return f.registerID, f.registerErr
}

func (f *fakeAuthService) VerifyOTP(userID int, code string) (string, *models.PublicUser, error) {
	return f.verifyToken, f.verifyUser, f.verifyErr
}

func (f *fakeAuthService) Login(identifier, password string) (string, *models.PublicUser, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeAuthService) ForgotPassword(identifier string) (int, error) { return 0, nil }

func (f *fakeAuthService) ResetPassword(userID int, code, newPassword string) error { return nil }

func (f *fakeAuthService) HashPassword(password string) (string, error) { return password, nil }

func (f *fakeAuthService) CheckPassword(hash, password string) bool { return hash == password }

func authRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/verify-otp", h.VerifyOTP)
	r.POST("/api/auth/login", h.Login)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestRegisterEndpoint(t *testing.T) {
	r := authRouter(&fakeAuthService{registerID: 12})

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Rahim","email":"rahim@example.com","phone":"01700000001","password":"secret123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered. Please verify your account with the OTP sent to your email", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["userId"])
}

func TestRegisterEndpointBadPayload(t *testing.T) {
	r := authRouter(&fakeAuthService{})

	// password below the minimum length never reaches the service
	w, body := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Rahim","email":"rahim@example.com","phone":"01700000001","password":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestVerifyOTPEndpoint(t *testing.T) {
	r := authRouter(&fakeAuthService{
		verifyToken: "jwt-token",
		verifyUser:  &models.PublicUser{ID: 12, Name: "Rahim", Role: "user"},
	})

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-otp",
		`{"userId":12,"otp":"123456"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Account verified successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token", data["token"])
}

func TestVerifyOTPEndpointInvalidCode(t *testing.T) {
	r := authRouter(&fakeAuthService{verifyErr: apperr.BadRequest("Invalid or expired OTP")})

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/verify-otp",
		`{"userId":12,"otp":"000000"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid or expired OTP", body["message"])
}

func TestLoginEndpointUnverified(t *testing.T) {
	r := authRouter(&fakeAuthService{
		loginErr: apperr.New(http.StatusBadRequest,
			"Account not verified. A new OTP has been sent to your email").
			WithData(map[string]interface{}{"userId": 12, "verified": false}),
	})

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"rahim@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["userId"])
	assert.Equal(t, false, data["verified"])
}

func TestLoginEndpoint(t *testing.T) {
	r := authRouter(&fakeAuthService{
		loginToken: "jwt-token",
		loginUser:  &models.PublicUser{ID: 12, Name: "Rahim", Role: "user"},
	})

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"identifier":"rahim@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", body["message"])
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Rahim", user["name"])
}
