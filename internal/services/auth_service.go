package services

import (
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/authz"
	"github.com/ataousCode/agro-backend/internal/config"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
	"github.com/ataousCode/agro-backend/internal/utils"
)

const defaultProfileImage = "default-avatar.png"

// AuthService drives the account lifecycle: registration, OTP verification,
// login (with re-issuance for unverified accounts), forgot/reset password.
// Each method is a single transition over the users table; the OTP slot on
// the user row is shared by the verify and reset flows, so issuing a code in
// one flow overwrites any pending code from the other (last write wins).
type AuthService interface {
	Register(req *models.RegisterRequest) (int, error)
	VerifyOTP(userID int, code string) (string, *models.PublicUser, error)
	Login(identifier, password string) (string, *models.PublicUser, error)
	ForgotPassword(identifier string) (int, error)
	ResetPassword(userID int, code, newPassword string) error

	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

type authService struct {
	users  repositories.UserRepository
	emails EmailService

	jwtSecret []byte
	jwtTTL    time.Duration
	otpLength int
	otpTTL    time.Duration
}

func NewAuthService(users repositories.UserRepository, emails EmailService, cfg *config.Config) AuthService {
	return &authService{
		users:     users,
		emails:    emails,
		jwtSecret: []byte(cfg.JWT.Secret),
		jwtTTL:    time.Duration(cfg.JWT.TTLHours) * time.Hour,
		otpLength: cfg.OTP.Length,
		otpTTL:    time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *authService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) issueToken(u *models.User) (string, error) {
	return utils.GenerateToken(u.ID, u.Role, s.jwtSecret, s.jwtTTL)
}

// challengeMatches checks the presented code against the user's OTP slot.
func challengeMatches(u *models.User, code string) bool {
	if u.OTPCode == nil || u.OTPExpiry == nil {
		return false
	}
	if *u.OTPCode != code {
		return false
	}
	return !utils.IsOTPExpired(*u.OTPExpiry)
}

func (s *authService) Register(req *models.RegisterRequest) (int, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	exists, err := s.users.ExistsByEmailOrPhone(email, phone)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperr.BadRequest("User already exists with that email or phone")
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	code, expiry := utils.NewChallenge(s.otpLength, s.otpTTL)
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		ProfileImage: defaultProfileImage,
		IsVerified:   false,
		Role:         authz.RoleUser,
		OTPCode:      &code,
		OTPExpiry:    &expiry,
	}
	if err := s.users.Create(user); err != nil {
		// the exists check above races with concurrent registrations;
		// the unique constraint is the authority
		if repositories.IsUniqueViolation(err) {
			return 0, apperr.BadRequest("User already exists with that email or phone")
		}
		return 0, err
	}

	// best effort: a failed send never rolls back the account,
	// the login path re-issues the OTP
	if s.emails != nil {
		if err := s.emails.SendOTPEmail(user.Email, user.Name, code); err != nil {
			log.Printf("[auth][register] failed to send OTP email to %s: %v", user.Email, err)
		}
	}
	return user.ID, nil
}

func (s *authService) VerifyOTP(userID int, code string) (string, *models.PublicUser, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperr.NotFound("User not found")
	}
	if !challengeMatches(user, code) {
		return "", nil, apperr.BadRequest("Invalid or expired OTP")
	}

	if err := s.users.VerifyAndClearOTP(user.ID); err != nil {
		return "", nil, err
	}
	user.IsVerified = true

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user.Public(), nil
}

func (s *authService) Login(identifier, password string) (string, *models.PublicUser, error) {
	user, err := s.users.GetByIdentifier(strings.TrimSpace(identifier))
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.CheckPassword(user.PasswordHash, password) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	if !user.IsVerified {
		code, expiry := utils.NewChallenge(s.otpLength, s.otpTTL)
		if err := s.users.SetOTP(user.ID, code, expiry); err != nil {
			return "", nil, err
		}
		if s.emails != nil {
			if err := s.emails.SendOTPEmail(user.Email, user.Name, code); err != nil {
				log.Printf("[auth][login] failed to send OTP email to %s: %v", user.Email, err)
			}
		}
		return "", nil, apperr.New(http.StatusBadRequest,
			"Account not verified. A new OTP has been sent to your email").
			WithData(map[string]interface{}{
				"userId":   user.ID,
				"verified": false,
			})
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user.Public(), nil
}

func (s *authService) ForgotPassword(identifier string) (int, error) {
	user, err := s.users.GetByIdentifier(strings.TrimSpace(identifier))
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperr.NotFound("User not found")
	}

	// works for verified accounts too; overwrites any pending verify OTP
	code, expiry := utils.NewChallenge(s.otpLength, s.otpTTL)
	if err := s.users.SetOTP(user.ID, code, expiry); err != nil {
		return 0, err
	}
	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(user.Email, user.Name, code); err != nil {
			log.Printf("[auth][forgot-password] failed to send reset email to %s: %v", user.Email, err)
		}
	}
	return user.ID, nil
}

func (s *authService) ResetPassword(userID int, code, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}
	if !challengeMatches(user, code) {
		return apperr.BadRequest("Invalid or expired OTP")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// does not touch the verification flag
	return s.users.UpdatePasswordAndClearOTP(user.ID, hash)
}
