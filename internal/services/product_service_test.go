package services

import (
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
)

type fakeProductRepo struct {
	nextID    int
	products  map[int]*models.Product
	reviewErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, products: map[int]*models.Product{}}
}

func (r *fakeProductRepo) Create(p *models.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *models.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id int) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(category string, limit, offset int) ([]*models.Product, error) {
	var res []*models.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			cp := *p
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeProductRepo) Featured(limit int) ([]*models.Product, error) {
	return r.List("", limit, 0)
}

func (r *fakeProductRepo) Search(query string, limit int) ([]*models.Product, error) {
	return r.List("", limit, 0)
}

func (r *fakeProductRepo) AddReview(review *models.ProductReview) error {
	return r.reviewErr
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func validSeed() *models.Product {
	return &models.Product{
		Name:     "BRRI dhan29",
		Price:    120,
		Category: models.CategorySeed,
		Unit:     strPtr("kg"),
		SeedType: strPtr("rice"),
	}
}

func TestProductCreateSeed(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	p := validSeed()
	p.Rating = 4.9 // client supplied junk is reset
	require.NoError(t, svc.Create(p))

	assert.Equal(t, 0.0, p.Rating)
	assert.Equal(t, 0, p.NumReviews)
	assert.True(t, p.IsAvailable)
}

func TestProductCreateMissingVariantFields(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	cases := []struct {
		product *models.Product
		message string
	}{
		{
			&models.Product{Category: models.CategorySeed, Unit: strPtr("kg")},
			"seed_type is required for seed products",
		},
		{
			&models.Product{Category: models.CategorySeedling, SeedlingType: strPtr("mango")},
			"unit is required for seedling products",
		},
		{
			&models.Product{Category: models.CategoryMachinery, RentingPrice: f64Ptr(500)},
			"selling_price is required for machinery products",
		},
		{
			&models.Product{Category: models.CategoryWorker, Wage: f64Ptr(600), Unit: strPtr("day")},
			"specialization is required for worker products",
		},
		{
			&models.Product{Category: "livestock"},
			"Invalid product category",
		},
	}
	for _, tc := range cases {
		err := svc.Create(tc.product)
		ae, ok := apperr.As(err)
		require.True(t, ok, "category %s", tc.product.Category)
		assert.Equal(t, http.StatusBadRequest, ae.Status)
		assert.Equal(t, tc.message, ae.Message)
	}
}

func TestProductUpdateKeepsCategory(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	p := validSeed()
	require.NoError(t, svc.Create(p))

	upd := validSeed()
	upd.ID = p.ID
	upd.Category = models.CategoryWorker // must be ignored
	require.NoError(t, svc.Update(upd))

	got, err := svc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategorySeed, got.Category)
}

func TestProductGetByIDMissing(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.GetByID(42)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "Product not found", ae.Message)
}

func TestProductAddReviewDuplicate(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	p := validSeed()
	require.NoError(t, svc.Create(p))

	repo.reviewErr = &pq.Error{Code: "23505"}
	err := svc.AddReview(&models.ProductReview{ProductID: p.ID, UserID: 1, Rating: 5})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "You have already reviewed this product", ae.Message)
}

func TestProductAddReviewUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	err := svc.AddReview(&models.ProductReview{ProductID: 42, UserID: 1, Rating: 5})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}
