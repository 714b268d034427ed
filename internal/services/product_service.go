package services

import (
	"fmt"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
)

type ProductService interface {
	Create(p *models.Product) error
	GetByID(id int) (*models.Product, error)
	Update(p *models.Product) error
	Delete(id int) error
	List(category string, limit, offset int) ([]*models.Product, error)
	Featured(limit int) ([]*models.Product, error)
	Search(query string, limit int) ([]*models.Product, error)
	AddReview(review *models.ProductReview) error
}

type productService struct {
	repo repositories.ProductRepository
}

func NewProductService(repo repositories.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// validateVariant checks the fields the product's category requires.
func validateVariant(p *models.Product) error {
	missing := func(field string) error {
		return apperr.BadRequest(fmt.Sprintf("%s is required for %s products", field, p.Category))
	}
	switch p.Category {
	case models.CategorySeed:
		if p.Unit == nil {
			return missing("unit")
		}
		if p.SeedType == nil {
			return missing("seed_type")
		}
	case models.CategorySeedling:
		if p.Unit == nil {
			return missing("unit")
		}
		if p.SeedlingType == nil {
			return missing("seedling_type")
		}
	case models.CategoryMachinery:
		if p.RentingPrice == nil {
			return missing("renting_price")
		}
		if p.SellingPrice == nil {
			return missing("selling_price")
		}
		if p.Unit == nil {
			return missing("unit")
		}
		if p.MachineryType == nil {
			return missing("machinery_type")
		}
	case models.CategoryWorker:
		if p.Wage == nil {
			return missing("wage")
		}
		if p.Unit == nil {
			return missing("unit")
		}
		if p.Specialization == nil {
			return missing("specialization")
		}
	default:
		return apperr.BadRequest("Invalid product category")
	}
	return nil
}

func (s *productService) Create(p *models.Product) error {
	if err := validateVariant(p); err != nil {
		return err
	}
	p.Rating = 0
	p.NumReviews = 0
	p.IsAvailable = true
	return s.repo.Create(p)
}

func (s *productService) GetByID(id int) (*models.Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (s *productService) Update(p *models.Product) error {
	current, err := s.GetByID(p.ID)
	if err != nil {
		return err
	}
	// category is immutable after creation
	p.Category = current.Category
	if err := validateVariant(p); err != nil {
		return err
	}
	return s.repo.Update(p)
}

func (s *productService) Delete(id int) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *productService) List(category string, limit, offset int) ([]*models.Product, error) {
	return s.repo.List(category, limit, offset)
}

func (s *productService) Featured(limit int) ([]*models.Product, error) {
	return s.repo.Featured(limit)
}

func (s *productService) Search(query string, limit int) ([]*models.Product, error) {
	return s.repo.Search(query, limit)
}

func (s *productService) AddReview(review *models.ProductReview) error {
	if _, err := s.GetByID(review.ProductID); err != nil {
		return err
	}
	if err := s.repo.AddReview(review); err != nil {
		if repositories.IsUniqueViolation(err) {
			return apperr.BadRequest("You have already reviewed this product")
		}
		return err
	}
	return nil
}
