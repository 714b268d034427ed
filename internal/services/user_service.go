package services

import (
	"strings"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
)

type UserService interface {
	GetByID(id int) (*models.User, error)
	UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error)
	UpdatePassword(userID int, currentPassword, newPassword string) error
	List(limit, offset int) ([]*models.User, error)
	AdminUpdate(user *models.User) error
	Delete(id int) error
}

type userService struct {
	repo repositories.UserRepository
	auth AuthService
}

func NewUserService(repo repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) UpdateProfile(userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.Address != "" {
		user.Address = strings.TrimSpace(req.Address)
	}
	if req.PostCode != "" {
		user.PostCode = strings.TrimSpace(req.PostCode)
	}
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdatePassword(userID int, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}
	if !s.auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(userID, hash)
}

func (s *userService) List(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}

func (s *userService) AdminUpdate(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) Delete(id int) error {
	return s.repo.Delete(id)
}
