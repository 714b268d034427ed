package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Address      string `json:"address,omitempty"`
	PostCode     string `json:"post_code,omitempty"`
	ProfileImage string `json:"profile_image"`
	IsVerified   bool   `json:"is_verified"`
	Role         string `json:"role"`

	// single OTP slot shared by the verify and reset flows (last write wins)
	OTPCode   *string    `json:"-"`
	OTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the shape returned from the auth endpoints.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

// ProfileView adds the optional profile fields for /me and /users/profile.
type ProfileView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PostCode     string `json:"post_code"`
	ProfileImage string `json:"profile_image"`
	Role         string `json:"role"`
}

func (u *User) Profile() *ProfileView {
	return &ProfileView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		PostCode:     u.PostCode,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type VerifyOTPRequest struct {
	UserID int    `json:"userId" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type ResetPasswordRequest struct {
	UserID      int    `json:"userId" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
