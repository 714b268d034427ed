package models

import "time"

const (
	OrderStatusConfirmed = "Order Confirmed"
	OrderStatusPacked    = "Packed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivery  = "Delivery"
)

type OrderItem struct {
	ID             int     `json:"id"`
	OrderID        int     `json:"order_id"`
	ProductID      int     `json:"product_id"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	IsRental       bool    `json:"is_rental"`
	RentalDuration *int    `json:"rental_duration,omitempty"`
	RentalUnit     *string `json:"rental_unit,omitempty"`
}

type ShippingAddress struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

type PaymentResult struct {
	ID         string `json:"id,omitempty"`
	Status     string `json:"status,omitempty"`
	UpdateTime string `json:"update_time,omitempty"`
	Email      string `json:"email,omitempty"`
}

type Order struct {
	ID                int             `json:"id"`
	UserID            int             `json:"user_id"`
	Items             []OrderItem     `json:"order_items"`
	ShippingAddress   ShippingAddress `json:"shipping_address"`
	PaymentMethod     string          `json:"payment_method"`
	PaymentResult     *PaymentResult  `json:"payment_result,omitempty"`
	TotalPrice        float64         `json:"total_price"`
	DeliveryCharge    float64         `json:"delivery_charge"`
	Discount          float64         `json:"discount"`
	Status            string          `json:"status"`
	IsPaid            bool            `json:"is_paid"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	IsDelivered       bool            `json:"is_delivered"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type CreateOrderItem struct {
	ProductID      int     `json:"product_id" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	Quantity       int     `json:"quantity" binding:"required,min=1"`
	Image          string  `json:"image"`
	Price          float64 `json:"price" binding:"required"`
	IsRental       bool    `json:"is_rental"`
	RentalDuration *int    `json:"rental_duration"`
	RentalUnit     *string `json:"rental_unit"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"order_items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress   `json:"shipping_address" binding:"required"`
	PaymentMethod   string            `json:"payment_method" binding:"required,oneof=cash bkash rocket nagad upay mcash mastercard visa"`
	DeliveryCharge  float64           `json:"delivery_charge"`
	Discount        float64           `json:"discount"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof='Order Confirmed' Packed Shipped Delivery"`
}

type UpdatePaymentRequest struct {
	PaymentResult PaymentResult `json:"payment_result"`
}
