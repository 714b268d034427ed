package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/services"
)

type DiseaseHandler struct {
	service services.DiseaseService
}

func NewDiseaseHandler(service services.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{service: service}
}

func (h *DiseaseHandler) GetAllDiseases(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	diseases, err := h.service.List(c.Query("crop_type"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"diseases": diseases})
}

func (h *DiseaseHandler) GetDiseaseByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	disease, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"disease": disease})
}

// ===== admin =====

func (h *DiseaseHandler) CreateDisease(c *gin.Context) {
	var disease models.Disease
	if err := c.ShouldBindJSON(&disease); err != nil {
		failBind(c, err)
		return
	}
	if err := h.service.Create(&disease); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Disease created", gin.H{"disease": disease})
}

func (h *DiseaseHandler) UpdateDisease(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	var disease models.Disease
	if err := c.ShouldBindJSON(&disease); err != nil {
		failBind(c, err)
		return
	}
	disease.ID = id

	if err := h.service.Update(&disease); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Disease updated", gin.H{"disease": updated})
}

func (h *DiseaseHandler) DeleteDisease(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}
	if err := h.service.Delete(id); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Disease deleted", nil)
}
