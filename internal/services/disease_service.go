package services

import (
	"database/sql"
	"errors"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
)

type DiseaseService interface {
	Create(d *models.Disease) error
	GetByID(id int) (*models.Disease, error)
	List(cropType string, limit, offset int) ([]*models.Disease, error)
	Update(d *models.Disease) error
	Delete(id int) error
}

type diseaseService struct {
	repo repositories.DiseaseRepository
}

func NewDiseaseService(repo repositories.DiseaseRepository) DiseaseService {
	return &diseaseService{repo: repo}
}

func (s *diseaseService) Create(d *models.Disease) error {
	if d.ContentType != "" && d.ContentType != "blog" && d.ContentType != "video" {
		return apperr.BadRequest("content_type must be blog or video")
	}
	return s.repo.Create(d)
}

func (s *diseaseService) GetByID(id int) (*models.Disease, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("Disease not found")
	}
	return d, nil
}

func (s *diseaseService) List(cropType string, limit, offset int) ([]*models.Disease, error) {
	return s.repo.List(cropType, limit, offset)
}

func (s *diseaseService) Update(d *models.Disease) error {
	if err := s.repo.Update(d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Disease not found")
		}
		return err
	}
	return nil
}

func (s *diseaseService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Disease not found")
		}
		return err
	}
	return nil
}
