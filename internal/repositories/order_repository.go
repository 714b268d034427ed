package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ataousCode/agro-backend/internal/models"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id int) (*models.Order, error)
	ListByUser(userID int) ([]*models.Order, error)
	ListAll(limit, offset int) ([]*models.Order, error)
	UpdateStatus(orderID int, status string, delivered bool) error
	MarkPaid(orderID int, result *models.PaymentResult) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(order *models.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO orders (
			user_id, ship_address, ship_city, ship_postal_code, ship_phone,
			payment_method, total_price, delivery_charge, discount,
			status, is_paid, is_delivered, estimated_delivery,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,FALSE,FALSE,$11,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(q,
		order.UserID,
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Phone,
		order.PaymentMethod,
		order.TotalPrice,
		order.DeliveryCharge,
		order.Discount,
		order.Status,
		order.EstimatedDelivery,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("order insert: %w", err)
	}

	const itemQ = `
		INSERT INTO order_items (
			order_id, product_id, name, quantity, image, price,
			is_rental, rental_duration, rental_unit
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID
		if err := tx.QueryRow(itemQ,
			order.ID, it.ProductID, it.Name, it.Quantity, it.Image, it.Price,
			it.IsRental, it.RentalDuration, it.RentalUnit,
		).Scan(&it.ID); err != nil {
			return fmt.Errorf("order item insert: %w", err)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	var (
		payID, payStatus, payUpdate, payEmail sql.NullString
		paidAt, deliveredAt, estimated        sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Phone,
		&o.PaymentMethod,
		&payID, &payStatus, &payUpdate, &payEmail,
		&o.TotalPrice, &o.DeliveryCharge, &o.Discount,
		&o.Status, &o.IsPaid, &paidAt, &o.IsDelivered, &deliveredAt, &estimated,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if payID.Valid || payStatus.Valid {
		o.PaymentResult = &models.PaymentResult{
			ID:         payID.String,
			Status:     payStatus.String,
			UpdateTime: payUpdate.String,
			Email:      payEmail.String,
		}
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		o.DeliveredAt = &t
	}
	if estimated.Valid {
		t := estimated.Time
		o.EstimatedDelivery = &t
	}
	return o, nil
}

const orderColumns = `
	id, user_id, ship_address, ship_city, ship_postal_code, ship_phone,
	payment_method,
	payment_id, payment_status, payment_update_time, payment_email,
	total_price, delivery_charge, discount,
	status, is_paid, paid_at, is_delivered, delivered_at, estimated_delivery,
	created_at, updated_at
`

func (r *orderRepository) loadItems(orders ...*models.Order) error {
	const q = `
		SELECT id, order_id, product_id, name, quantity, image, price,
			is_rental, rental_duration, rental_unit
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	for _, o := range orders {
		rows, err := r.DB.Query(q, o.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var it models.OrderItem
			var dur sql.NullInt64
			var unit sql.NullString
			if err := rows.Scan(
				&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity,
				&it.Image, &it.Price, &it.IsRental, &dur, &unit,
			); err != nil {
				rows.Close()
				return err
			}
			if dur.Valid {
				d := int(dur.Int64)
				it.RentalDuration = &d
			}
			if unit.Valid {
				it.RentalUnit = &unit.String
			}
			o.Items = append(o.Items, it)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

func (r *orderRepository) GetByID(id int) (*models.Order, error) {
	q := `SELECT` + orderColumns + `FROM orders WHERE id = $1`
	o, err := r.scanOrder(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) queryOrders(q string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(res...); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *orderRepository) ListByUser(userID int) ([]*models.Order, error) {
	q := `SELECT` + orderColumns + `FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(q, userID)
}

func (r *orderRepository) ListAll(limit, offset int) ([]*models.Order, error) {
	q := `SELECT` + orderColumns + `FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(q, limit, offset)
}

func (r *orderRepository) UpdateStatus(orderID int, status string, delivered bool) error {
	var deliveredAt *time.Time
	if delivered {
		now := time.Now()
		deliveredAt = &now
	}
	res, err := r.DB.Exec(`
		UPDATE orders
		SET status=$1, is_delivered=$2, delivered_at=$3, updated_at=NOW()
		WHERE id=$4
	`, status, delivered, deliveredAt, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *orderRepository) MarkPaid(orderID int, result *models.PaymentResult) error {
	var payID, payStatus, payUpdate, payEmail *string
	if result != nil {
		payID, payStatus, payUpdate, payEmail = &result.ID, &result.Status, &result.UpdateTime, &result.Email
	}
	res, err := r.DB.Exec(`
		UPDATE orders
		SET is_paid=TRUE, paid_at=NOW(),
			payment_id=$1, payment_status=$2, payment_update_time=$3, payment_email=$4,
			updated_at=NOW()
		WHERE id=$5
	`, payID, payStatus, payUpdate, payEmail, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
