package repository

import (
	"context"
	"database/sql"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

// CreateOrder inserts the order row and all item rows in one transaction so a
// failed item insert never leaves an order behind with no items.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order, phoneNormalized string) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (order_number, customer_name, customer_phone, customer_email, delivery_address,
		delivery_fee, subtotal, total, notes, status, payment_method, transaction_code, phone_normalized, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery,
		order.OrderNumber, order.CustomerName, order.CustomerPhone, nullable(order.CustomerEmail),
		order.DeliveryAddress, order.DeliveryFee, order.Subtotal, order.Total, nullable(order.Notes),
		order.Status, order.PaymentMethod, nullable(order.TransactionCode), phoneNormalized, order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Batch insert items with a single multi-VALUES statement.
	itemQuery := `INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, variation, image_url) VALUES `
	var values []interface{}
	for _, item := range order.Items {
		itemQuery += "(?, ?, ?, ?, ?, ?, ?),"
		values = append(values, orderID, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
			nullable(item.Variation), nullable(item.ImageURL))
	}
	itemQuery = itemQuery[:len(itemQuery)-1]

	if _, err := tx.ExecContext(ctx, itemQuery, values...); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return order, nil
}

// GetOrderByNumber returns the order with its items, or sql.ErrNoRows.
func (r *OrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	query := `SELECT id, order_number, customer_name, customer_phone, COALESCE(customer_email, ''), delivery_address,
		delivery_fee, subtotal, total, COALESCE(notes, ''), status, payment_method, COALESCE(transaction_code, ''), created_at
		FROM orders WHERE order_number = ?`

	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
		&order.DeliveryAddress, &order.DeliveryFee, &order.Subtotal, &order.Total, &order.Notes,
		&order.Status, &order.PaymentMethod, &order.TransactionCode, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindOrdersByPhone matches a normalized phone fragment, newest first,
// capped at limit rows.
func (r *OrderRepository) FindOrdersByPhone(ctx context.Context, phoneFragment string, limit int) ([]*entity.Order, error) {
	query := `SELECT id, order_number, customer_name, customer_phone, COALESCE(customer_email, ''), delivery_address,
		delivery_fee, subtotal, total, COALESCE(notes, ''), status, payment_method, COALESCE(transaction_code, ''), created_at
		FROM orders WHERE phone_normalized LIKE ? ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, "%"+phoneFragment+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := &entity.Order{}
		err := rows.Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerPhone,
			&order.CustomerEmail, &order.DeliveryAddress, &order.DeliveryFee, &order.Subtotal, &order.Total,
			&order.Notes, &order.Status, &order.PaymentMethod, &order.TransactionCode, &order.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := r.attachItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ListOrders returns orders for the admin view, optionally filtered by status.
func (r *OrderRepository) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT id, order_number, customer_name, customer_phone, COALESCE(customer_email, ''), delivery_address,
		delivery_fee, subtotal, total, COALESCE(notes, ''), status, payment_method, COALESCE(transaction_code, ''), created_at
		FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := &entity.Order{}
		err := rows.Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.CustomerPhone,
			&order.CustomerEmail, &order.DeliveryAddress, &order.DeliveryFee, &order.Subtotal, &order.Total,
			&order.Notes, &order.Status, &order.PaymentMethod, &order.TransactionCode, &order.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := r.attachItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteOrder removes the order and its items in one transaction.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *OrderRepository) attachItems(ctx context.Context, order *entity.Order) error {
	query := `SELECT id, order_id, product_id, name, unit_price, quantity, COALESCE(variation, ''), COALESCE(image_url, '')
		FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []entity.OrderItem{}
	for rows.Next() {
		item := entity.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.UnitPrice,
			&item.Quantity, &item.Variation, &item.ImageURL)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
