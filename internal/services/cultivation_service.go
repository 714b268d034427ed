package services

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
)

type CultivationService interface {
	Create(c *models.Cultivation) error
	GetByID(id int) (*models.Cultivation, error)
	List(cropType string, limit, offset int) ([]*models.Cultivation, error)
	ListCropTypes() ([]string, error)
	Update(c *models.Cultivation) error
	Delete(id int) error
}

type cultivationService struct {
	repo repositories.CultivationRepository
}

func NewCultivationService(repo repositories.CultivationRepository) CultivationService {
	return &cultivationService{repo: repo}
}

func normalizeSteps(c *models.Cultivation) {
	sort.SliceStable(c.Steps, func(i, j int) bool {
		return c.Steps[i].OrderIndex < c.Steps[j].OrderIndex
	})
}

func (s *cultivationService) Create(c *models.Cultivation) error {
	normalizeSteps(c)
	return s.repo.Create(c)
}

func (s *cultivationService) GetByID(id int) (*models.Cultivation, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("Cultivation process not found")
	}
	return c, nil
}

func (s *cultivationService) List(cropType string, limit, offset int) ([]*models.Cultivation, error) {
	return s.repo.List(cropType, limit, offset)
}

func (s *cultivationService) ListCropTypes() ([]string, error) {
	return s.repo.ListCropTypes()
}

func (s *cultivationService) Update(c *models.Cultivation) error {
	normalizeSteps(c)
	if err := s.repo.Update(c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Cultivation process not found")
		}
		return err
	}
	return nil
}

func (s *cultivationService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Cultivation process not found")
		}
		return err
	}
	return nil
}
