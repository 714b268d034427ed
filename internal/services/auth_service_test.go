package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/config"
	"github.com/ataousCode/agro-backend/internal/models"
)

// in-memory UserRepository for the service tests
type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]*models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIdentifier(identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == identifier || u.Phone == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmailOrPhone(email, phone string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID int, hash string) error {
	r.users[userID].PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) Delete(id int) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var res []*models.User
	for _, u := range r.users {
		cp := *u
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeUserRepo) SetOTP(userID int, code string, expiry time.Time) error {
	u := r.users[userID]
	u.OTPCode = &code
	u.OTPExpiry = &expiry
	return nil
}

func (r *fakeUserRepo) VerifyAndClearOTP(userID int) error {
	u := r.users[userID]
	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiry = nil
	return nil
}

func (r *fakeUserRepo) UpdatePasswordAndClearOTP(userID int, hash string) error {
	u := r.users[userID]
	u.PasswordHash = hash
	u.OTPCode = nil
	u.OTPExpiry = nil
	return nil
}

// recording EmailService; never fails
type fakeEmailService struct {
	otpSent   []string
	resetSent []string
}

func (f *fakeEmailService) SendOTPEmail(email, name, otp string) error {
	f.otpSent = append(f.otpSent, otp)
	return nil
}

func (f *fakeEmailService) SendPasswordResetEmail(email, name, otp string) error {
	f.resetSent = append(f.resetSent, otp)
	return nil
}

func (f *fakeEmailService) SendOrderConfirmationEmail(email, name string, order *models.Order) error {
	return nil
}

func newTestAuthService() (AuthService, *fakeUserRepo, *fakeEmailService) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLHours = 1
	cfg.OTP.Length = 6
	cfg.OTP.TTLMinutes = 10

	repo := newFakeUserRepo()
	emails := &fakeEmailService{}
	return NewAuthService(repo, emails, cfg), repo, emails
}

func register(t *testing.T, svc AuthService) int {
	t.Helper()
	id, err := svc.Register(&models.RegisterRequest{
		Name:     "Rahim",
		Email:    "Rahim@Example.com",
		Phone:    "01700000001",
		Password: "secret123",
	})
	require.NoError(t, err)
	return id
}

func TestRegister(t *testing.T) {
	svc, repo, emails := newTestAuthService()

	id := register(t, svc)
	u, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "rahim@example.com", u.Email, "email is stored lowercased")
	assert.False(t, u.IsVerified)
	assert.Equal(t, "user", u.Role)
	require.NotNil(t, u.OTPCode)
	assert.Len(t, *u.OTPCode, 6)
	require.Len(t, emails.otpSent, 1)
	assert.Equal(t, *u.OTPCode, emails.otpSent[0])
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc)

	_, err := svc.Register(&models.RegisterRequest{
		Name:     "Other",
		Email:    "rahim@example.com",
		Phone:    "01700000002",
		Password: "secret123",
	})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "User already exists with that email or phone", ae.Message)
}

func TestVerifyOTP(t *testing.T) {
	svc, repo, emails := newTestAuthService()
	id := register(t, svc)

	token, user, err := svc.VerifyOTP(id, emails.otpSent[0])
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, id, user.ID)

	u, _ := repo.GetByID(id)
	assert.True(t, u.IsVerified)
	assert.Nil(t, u.OTPCode, "challenge is single use")

	// replay with the same code fails
	_, _, err = svc.VerifyOTP(id, emails.otpSent[0])
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid or expired OTP", ae.Message)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, _, _ := newTestAuthService()
	id := register(t, svc)

	_, _, err := svc.VerifyOTP(id, "000000x")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, repo, emails := newTestAuthService()
	id := register(t, svc)

	require.NoError(t, repo.SetOTP(id, emails.otpSent[0], time.Now().Add(-time.Second)))

	_, _, err := svc.VerifyOTP(id, emails.otpSent[0])
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid or expired OTP", ae.Message)
}

func TestVerifyOTPUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.VerifyOTP(999, "123456")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "User not found", ae.Message)
}

func TestLoginUnverifiedReissuesOTP(t *testing.T) {
	svc, repo, emails := newTestAuthService()
	id := register(t, svc)

	token, user, err := svc.Login("rahim@example.com", "secret123")
	assert.Empty(t, token, "unverified accounts never get a token")
	assert.Nil(t, user)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, id, ae.Data["userId"])
	assert.Equal(t, false, ae.Data["verified"])

	// a fresh code was issued; the registration code is dead
	require.Len(t, emails.otpSent, 2)
	u, _ := repo.GetByID(id)
	assert.Equal(t, emails.otpSent[1], *u.OTPCode)
}

func TestLoginVerified(t *testing.T) {
	svc, _, emails := newTestAuthService()
	id := register(t, svc)
	_, _, err := svc.VerifyOTP(id, emails.otpSent[0])
	require.NoError(t, err)

	token, user, err := svc.Login("rahim@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, id, user.ID)

	// phone works as the identifier too
	token, _, err = svc.Login("01700000001", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, emails := newTestAuthService()
	id := register(t, svc)
	_, _, err := svc.VerifyOTP(id, emails.otpSent[0])
	require.NoError(t, err)

	for _, tc := range []struct{ identifier, password string }{
		{"rahim@example.com", "wrong"},
		{"nobody@example.com", "secret123"},
	} {
		_, _, err := svc.Login(tc.identifier, tc.password)
		ae, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, ae.Status)
		assert.Equal(t, "Invalid credentials", ae.Message)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, _, emails := newTestAuthService()
	id := register(t, svc)
	_, _, err := svc.VerifyOTP(id, emails.otpSent[0])
	require.NoError(t, err)

	gotID, err := svc.ForgotPassword("rahim@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	require.Len(t, emails.resetSent, 1)

	code := emails.resetSent[0]
	require.NoError(t, svc.ResetPassword(id, code, "newpass456"))

	// old password is gone, new one works
	_, _, err = svc.Login("rahim@example.com", "secret123")
	assert.Error(t, err)
	_, _, err = svc.Login("rahim@example.com", "newpass456")
	assert.NoError(t, err)

	// reset code is single use
	err = svc.ResetPassword(id, code, "another789")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid or expired OTP", ae.Message)
}

func TestForgotPasswordUnknownIdentifier(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.ForgotPassword("nobody@example.com")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestResetPasswordKeepsVerificationState(t *testing.T) {
	svc, repo, emails := newTestAuthService()
	id := register(t, svc)

	// forgot-password on a still unverified account
	_, err := svc.ForgotPassword("rahim@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(id, emails.resetSent[0], "newpass456"))

	u, _ := repo.GetByID(id)
	assert.False(t, u.IsVerified, "password reset must not verify the account")
}

func TestResetOTPOverwritesVerifyOTP(t *testing.T) {
	svc, _, emails := newTestAuthService()
	id := register(t, svc)

	// requesting a reset replaces the pending verification code
	_, err := svc.ForgotPassword("rahim@example.com")
	require.NoError(t, err)

	_, _, err = svc.VerifyOTP(id, emails.otpSent[0])
	require.Error(t, err)

	// the latest code still verifies the account
	_, _, err = svc.VerifyOTP(id, emails.resetSent[0])
	assert.NoError(t, err)
}
