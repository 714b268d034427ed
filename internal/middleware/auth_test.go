package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataousCode/agro-backend/internal/authz"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/utils"
)

var testSecret = []byte("test-secret")

type fakeUserService struct {
	users map[int]*models.User
}

func (f *fakeUserService) GetByID(id int) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserService) UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdatePassword(userID int, currentPassword, newPassword string) error {
	return nil
}

func (f *fakeUserService) List(limit, offset int) ([]*models.User, error) { return nil, nil }

func (f *fakeUserService) AdminUpdate(user *models.User) error { return nil }

func (f *fakeUserService) Delete(id int) error { return nil }

func protectedRouter(users *fakeUserService, restricted bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Protect(users, testSecret)}
	if restricted {
		handlers = append(handlers, RestrictTo(authz.RoleAdmin))
	}
	handlers = append(handlers, func(c *gin.Context) {
		v, _ := c.Get(CurrentUserKey)
		user := v.(*models.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	r.GET("/secure", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtect(t *testing.T) {
	users := &fakeUserService{users: map[int]*models.User{
		7: {ID: 7, Role: authz.RoleUser},
	}}
	r := protectedRouter(users, false)

	token, err := utils.GenerateToken(7, authz.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestProtectRejects(t *testing.T) {
	users := &fakeUserService{users: map[int]*models.User{
		7: {ID: 7, Role: authz.RoleUser},
	}}
	r := protectedRouter(users, false)

	expired, err := utils.GenerateToken(7, authz.RoleUser, testSecret, -time.Minute)
	require.NoError(t, err)
	wrongSecret, err := utils.GenerateToken(7, authz.RoleUser, []byte("other"), time.Hour)
	require.NoError(t, err)
	deletedUser, err := utils.GenerateToken(99, authz.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"empty token":    "Bearer ",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + wrongSecret,
		"deleted user":   "Bearer " + deletedUser,
	}
	for name, header := range cases {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), "Not authorized to access this route", name)
	}
}

func TestRestrictTo(t *testing.T) {
	users := &fakeUserService{users: map[int]*models.User{
		7: {ID: 7, Role: authz.RoleUser},
		8: {ID: 8, Role: authz.RoleAdmin},
	}}
	r := protectedRouter(users, true)

	userToken, err := utils.GenerateToken(7, authz.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken(8, authz.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You do not have permission to perform this action")

	w = get(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
