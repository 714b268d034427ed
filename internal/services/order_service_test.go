package services

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataousCode/agro-backend/internal/apperr"
	"github.com/ataousCode/agro-backend/internal/authz"
	"github.com/ataousCode/agro-backend/internal/models"
)

type fakeOrderRepo struct {
	nextID int
	orders map[int]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[int]*models.Order{}}
}

func (r *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = r.nextID
	r.nextID++
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id int) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(userID int) ([]*models.Order, error) {
	var res []*models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeOrderRepo) ListAll(limit, offset int) ([]*models.Order, error) {
	var res []*models.Order
	for _, o := range r.orders {
		cp := *o
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID int, status string, delivered bool) error {
	o, ok := r.orders[orderID]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	o.IsDelivered = delivered
	if delivered {
		now := time.Now()
		o.DeliveredAt = &now
	}
	return nil
}

func (r *fakeOrderRepo) MarkPaid(orderID int, result *models.PaymentResult) error {
	o, ok := r.orders[orderID]
	if !ok {
		return sql.ErrNoRows
	}
	o.IsPaid = true
	o.PaymentResult = result
	now := time.Now()
	o.PaidAt = &now
	return nil
}

func testShipping() models.ShippingAddress {
	return models.ShippingAddress{
		Address:    "12 Mirpur Rd",
		City:       "Dhaka",
		PostalCode: "1216",
		Phone:      "01700000001",
	}
}

func testOrderRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		Items: []models.CreateOrderItem{
			{ProductID: 1, Name: "BRRI dhan29", Quantity: 2, Price: 120},
			{ProductID: 2, Name: "Power tiller", Quantity: 1, Price: 500, IsRental: true},
		},
		ShippingAddress: testShipping(),
		PaymentMethod:   "bkash",
		DeliveryCharge:  60,
		Discount:        40,
	}
}

func TestOrderCreate(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)
	user := &models.User{ID: 7, Role: authz.RoleUser}

	order, err := svc.Create(user, testOrderRequest())
	require.NoError(t, err)

	// 2*120 + 1*500 + 60 delivery - 40 discount
	assert.Equal(t, 760.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, 7, order.UserID)
	assert.Len(t, order.Items, 2)
	require.NotNil(t, order.EstimatedDelivery)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), *order.EstimatedDelivery, time.Minute)
}

func TestOrderCreateEmpty(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), nil, nil)

	_, err := svc.Create(&models.User{ID: 7}, &models.CreateOrderRequest{
		ShippingAddress: testShipping(),
		PaymentMethod:   "cash",
	})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "No order items", ae.Message)
}

func TestOrderGetForUser(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)
	owner := &models.User{ID: 7, Role: authz.RoleUser}

	order, err := svc.Create(owner, testOrderRequest())
	require.NoError(t, err)

	got, err := svc.GetForUser(order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// admins can read anyone's order
	admin := &models.User{ID: 99, Role: authz.RoleAdmin}
	_, err = svc.GetForUser(order.ID, admin)
	assert.NoError(t, err)

	// other customers cannot
	stranger := &models.User{ID: 8, Role: authz.RoleUser}
	_, err = svc.GetForUser(order.ID, stranger)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Not authorized to access this order", ae.Message)
}

func TestOrderGetForUserMissing(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), nil, nil)

	_, err := svc.GetForUser(42, &models.User{ID: 7})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "Order not found", ae.Message)
}

func TestOrderUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)
	owner := &models.User{ID: 7, Role: authz.RoleUser}

	order, err := svc.Create(owner, testOrderRequest())
	require.NoError(t, err)

	got, err := svc.UpdateStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
	assert.False(t, got.IsDelivered)

	got, err = svc.UpdateStatus(order.ID, models.OrderStatusDelivery)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	assert.NotNil(t, got.DeliveredAt)

	_, err = svc.UpdateStatus(999, models.OrderStatusPacked)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Order not found", ae.Message)
}

func TestOrderMarkPaid(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, nil)
	owner := &models.User{ID: 7, Role: authz.RoleUser}

	order, err := svc.Create(owner, testOrderRequest())
	require.NoError(t, err)

	got, err := svc.MarkPaid(order.ID, &models.PaymentResult{ID: "TX123", Status: "completed"})
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.NotNil(t, got.PaidAt)
	require.NotNil(t, got.PaymentResult)
	assert.Equal(t, "TX123", got.PaymentResult.ID)
}
