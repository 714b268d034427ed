package services

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/authz"
	"github.com/ataousCode/agro-backend/internal/models"
	"github.com/ataousCode/agro-backend/internal/repositories"
)

const estimatedDeliveryDays = 3

type OrderService interface {
	Create(user *models.User, req *models.CreateOrderRequest) (*models.Order, error)
	// GetForUser returns the order when the caller owns it or is an admin.
	GetForUser(orderID int, user *models.User) (*models.Order, error)
	ListByUser(userID int) ([]*models.Order, error)
	ListAll(limit, offset int) ([]*models.Order, error)
	UpdateStatus(orderID int, status string) (*models.Order, error)
	MarkPaid(orderID int, result *models.PaymentResult) (*models.Order, error)
}

type orderService struct {
	repo     repositories.OrderRepository
	emails   EmailService
	telegram *TelegramService
}

func NewOrderService(repo repositories.OrderRepository, emails EmailService, telegram *TelegramService) OrderService {
	return &orderService{repo: repo, emails: emails, telegram: telegram}
}

func (s *orderService) Create(user *models.User, req *models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.BadRequest("No order items")
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		total += it.Price * float64(it.Quantity)
		items = append(items, models.OrderItem{
			ProductID:      it.ProductID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			Image:          it.Image,
			Price:          it.Price,
			IsRental:       it.IsRental,
			RentalDuration: it.RentalDuration,
			RentalUnit:     it.RentalUnit,
		})
	}
	total += req.DeliveryCharge - req.Discount

	estimated := time.Now().Add(estimatedDeliveryDays * 24 * time.Hour)
	order := &models.Order{
		UserID:            user.ID,
		Items:             items,
		ShippingAddress:   req.ShippingAddress,
		PaymentMethod:     req.PaymentMethod,
		TotalPrice:        total,
		DeliveryCharge:    req.DeliveryCharge,
		Discount:          req.Discount,
		Status:            models.OrderStatusConfirmed,
		EstimatedDelivery: &estimated,
	}
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendOrderConfirmationEmail(user.Email, user.Name, order); err != nil {
			log.Printf("[order][create] failed to send confirmation email to %s: %v", user.Email, err)
		}
	}
	s.telegram.NotifyNewOrder(order, user)

	return order, nil
}

func (s *orderService) GetForUser(orderID int, user *models.User) (*models.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	if order.UserID != user.ID && !authz.IsAdmin(user.Role) {
		return nil, apperr.Unauthorized("Not authorized to access this order")
	}
	return order, nil
}

func (s *orderService) ListByUser(userID int) ([]*models.Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *orderService) ListAll(limit, offset int) ([]*models.Order, error) {
	return s.repo.ListAll(limit, offset)
}

func (s *orderService) UpdateStatus(orderID int, status string) (*models.Order, error) {
	delivered := status == models.OrderStatusDelivery
	if err := s.repo.UpdateStatus(orderID, status, delivered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return s.repo.GetByID(orderID)
}

func (s *orderService) MarkPaid(orderID int, result *models.PaymentResult) (*models.Order, error) {
	if err := s.repo.MarkPaid(orderID, result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return s.repo.GetByID(orderID)
}
