package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

// CatalogHandler serves the per-kind product routes (/api/seeds etc.).
// Each instance is pinned to one category; the generic /api/products
// handler covers cross-category operations.
type CatalogHandler struct {
	service  services.ProductService
	category string
}

func NewSeedHandler(service services.ProductService) *CatalogHandler {
	return &CatalogHandler{service: service, category: models.CategorySeed}
}

func NewSeedlingHandler(service services.ProductService) *CatalogHandler {
	return &CatalogHandler{service: service, category: models.CategorySeedling}
}

func NewMachineryHandler(service services.ProductService) *CatalogHandler {
	return &CatalogHandler{service: service, category: models.CategoryMachinery}
}

func NewWorkerHandler(service services.ProductService) *CatalogHandler {
	return &CatalogHandler{service: service, category: models.CategoryWorker}
}

func (h *CatalogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.service.List(h.category, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"products": products})
}

// getInCategory loads the product and hides ids from other categories.
func (h *CatalogHandler) getInCategory(id int) (*models.Product, error) {
	product, err := h.service.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.Category != h.category {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	product, err := h.getInCategory(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"product": product})
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		failBind(c, err)
		return
	}
	product.Category = h.category

	if err := h.service.Create(&product); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if _, err := h.getInCategory(id); err != nil {
		fail(c, err)
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		failBind(c, err)
		return
	}
	product.ID = id
	product.Category = h.category

	if err := h.service.Update(&product); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Product updated", gin.H{"product": updated})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if _, err := h.getInCategory(id); err != nil {
		fail(c, err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Product deleted", nil)
}
