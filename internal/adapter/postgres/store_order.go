package postgres

import (
	"context"
	"fmt"

	"github.com/garzadist/fieldops/internal/domain/order"
)

const orderColumns = `id, order_number, restaurant_id, status, total, notes, COALESCE(created_by::text, ''), created_at`

// NextOrderNumber calls the database-side order number generator.
func (s *Store) NextOrderNumber(ctx context.Context) (string, error) {
	var number string
	if err := s.pool.QueryRow(ctx, `SELECT next_order_number()`).Scan(&number); err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	return number, nil
}

// CreateOrder inserts an order.
func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO orders (order_number, restaurant_id, status, total, notes, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		o.OrderNumber, o.RestaurantID, string(o.Status), o.Total, o.Notes, nullIfEmpty(o.CreatedBy),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetOrder returns an order by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		return nil, notFoundWrap(err, "get order %s", id)
	}
	return &o, nil
}

// ListOrdersByRestaurant returns a restaurant's orders, newest first.
func (s *Store) ListOrdersByRestaurant(ctx context.Context, restaurantID string) ([]order.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row scannable) (order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.RestaurantID, &o.Status, &o.Total, &o.Notes, &o.CreatedBy, &o.CreatedAt)
	return o, err
}
