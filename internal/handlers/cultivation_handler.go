package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

type CultivationHandler struct {
	service services.CultivationService
}

func NewCultivationHandler(service services.CultivationService) *CultivationHandler {
	return &CultivationHandler{service: service}
}

// @Summary      List cultivation guides
// @Tags         Cultivation
// @Produce      json
// @Param        crop_type  query     string  false  "crop | vegetable | flower | fruit"
// @Success      200        {object}  map[string]interface{}
// @Router       /api/cultivation [get]
func (h *CultivationHandler) GetAllCultivations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cultivations, err := h.service.List(c.Query("crop_type"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"cultivations": cultivations})
}

func (h *CultivationHandler) GetCropTypes(c *gin.Context) {
	crops, err := h.service.ListCropTypes()
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"crops": crops})
}

func (h *CultivationHandler) GetCultivationByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	cultivation, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"cultivation": cultivation})
}

// ===== admin =====

func (h *CultivationHandler) CreateCultivation(c *gin.Context) {
	var cultivation models.Cultivation
	if err := c.ShouldBindJSON(&cultivation); err != nil {
		failBind(c, err)
		return
	}
	if err := h.service.Create(&cultivation); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Cultivation process created", gin.H{"cultivation": cultivation})
}

func (h *CultivationHandler) UpdateCultivation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	var cultivation models.Cultivation
	if err := c.ShouldBindJSON(&cultivation); err != nil {
		failBind(c, err)
		return
	}
	cultivation.ID = id

	if err := h.service.Update(&cultivation); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Cultivation process updated", gin.H{"cultivation": updated})
}

func (h *CultivationHandler) DeleteCultivation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if err := h.service.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Cultivation process deleted", nil)
}
