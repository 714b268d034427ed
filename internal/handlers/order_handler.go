package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/pdf"
	"github.com/ataousCode/agro-backend/internal/services"
)

type OrderHandler struct {
	service  services.OrderService
	invoices pdf.Generator
}

func NewOrderHandler(service services.OrderService, invoices pdf.Generator) *OrderHandler {
	return &OrderHandler{service: service, invoices: invoices}
}

// @Summary      Place an order
// @Tags         Orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        order  body      models.CreateOrderRequest  true  "Order items and shipping"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	order, err := h.service.Create(user, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}

	orders, err := h.service.ListByUser(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	order, err := h.service.GetForUser(id, user)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"order": order})
}

// @Summary      Download the order invoice
// @Tags         Orders
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  int  true  "Order id"
// @Success      200
// @Router       /api/orders/{id}/invoice [get]
func (h *OrderHandler) GetOrderInvoice(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		fail(c, errMissingUser)
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	order, err := h.service.GetForUser(id, user)
	if err != nil {
		fail(c, err)
		return
	}

	path, err := h.invoices.GenerateInvoice(order, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.FileAttachment(path, "invoice.pdf")
}

// ===== admin =====

func (h *OrderHandler) PayOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	order, err := h.service.MarkPaid(id, &req.PaymentResult)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Order paid", gin.H{"order": order})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.service.ListAll(limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, apperr.BadRequest("invalid id"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	order, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Order status updated", gin.H{"order": order})
}
