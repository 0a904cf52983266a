package services

import (
	"context"
	"fmt"

	"storebot/db"
	"storebot/models"
)

// OrderStore persists priced orders. CreateOrder writes the order and its
// items in one transaction: callers never observe a partial order.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order, items []models.OrderItem) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}

type PGOrderStore struct{}

const orderColumns = `id, order_no, customer_name, phone, COALESCE(address, ''), is_catering,
	COALESCE(catering_package, ''), COALESCE(pax, 0), subtotal, discount, tax, delivery_fee, total,
	COALESCE(promo_code, ''), status, created_at`

func (PGOrderStore) CreateOrder(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			order_no, customer_name, phone, address, is_catering, catering_package, pax,
			subtotal, discount, tax, delivery_fee, total, promo_code, status
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, 0),
			$8, $9, $10, $11, $12, NULLIF($13, ''), $14)
		RETURNING id, created_at`,
		o.OrderNo, o.CustomerName, o.Phone, o.Address, o.IsCatering, o.CateringPackage, o.Pax,
		o.Subtotal, o.Discount, o.Tax, o.DeliveryFee, o.Total, o.PromoCode, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range items {
		items[i].OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			o.ID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (PGOrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.OrderNo, &o.CustomerName, &o.Phone, &o.Address, &o.IsCatering,
		&o.CateringPackage, &o.Pax, &o.Subtotal, &o.Discount, &o.Tax, &o.DeliveryFee,
		&o.Total, &o.PromoCode, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (PGOrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNo, &o.CustomerName, &o.Phone, &o.Address, &o.IsCatering,
			&o.CateringPackage, &o.Pax, &o.Subtotal, &o.Discount, &o.Tax, &o.DeliveryFee,
			&o.Total, &o.PromoCode, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (PGOrderStore) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (PGOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	valid := false
	for _, s := range models.OrderStatuses {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return Validation(fmt.Sprintf("Status tidak dikenal: %s", status))
	}
	_, err := db.Pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	return err
}
