package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

type ProductHandler struct {
	service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// @Summary      List products
// @Tags         Products
// @Produce      json
// @Param        category  query     string  false  "seed | seedling | machinery | worker"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/products [get]
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.service.List(c.Query("category"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"products": products})
}

func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	products, err := h.service.Featured(limit)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"products": products})
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, apperr.BadRequest("search query is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	products, err := h.service.Search(query, limit)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"products": products})
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"product": product})
}

// @Summary      Review a product
// @Tags         Products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path      int                   true  "Product id"
// @Param        review  body      models.ReviewRequest  true  "Rating and comment"
// @Success      201     {object}  map[string]interface{}
// @Router       /api/products/{id}/reviews [post]
func (h *ProductHandler) AddProductReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	review := &models.ProductReview{
		ProductID: id,
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.service.AddReview(review); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Review added", gin.H{"review": review})
}

// ===== admin =====

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		failBind(c, err)
		return
	}
	if err := h.service.Create(&product); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Product created", gin.H{"product": product})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		failBind(c, err)
		return
	}
	product.ID = id

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

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if err := h.service.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Product deleted", nil)
}
