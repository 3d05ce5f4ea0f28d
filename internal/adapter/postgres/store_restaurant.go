package postgres

import (
	"context"
	"fmt"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/restaurant"
)

const restaurantColumns = `id, name, contact_name, phone, address, gas_customer, uco_supplier, version, created_at, updated_at`

// CreateRestaurant inserts a restaurant.
func (s *Store) CreateRestaurant(ctx context.Context, req restaurant.CreateRequest) (*restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO restaurants (name, contact_name, phone, address, gas_customer, uco_supplier)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+restaurantColumns,
		req.Name, req.ContactName, req.Phone, req.Address, req.GasCustomer, req.UCOSupplier)

	r, err := scanRestaurant(row)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return &r, nil
}

// GetRestaurant returns a restaurant by ID.
func (s *Store) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)

	r, err := scanRestaurant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get restaurant %s", id)
	}
	return &r, nil
}

// ListRestaurants returns all restaurants, newest first.
func (s *Store) ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []restaurant.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

// UpdateRestaurant updates a restaurant with optimistic locking on version.
func (s *Store) UpdateRestaurant(ctx context.Context, r *restaurant.Restaurant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE restaurants
		 SET name = $2, contact_name = $3, phone = $4, address = $5,
		     gas_customer = $6, uco_supplier = $7, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $8`,
		r.ID, r.Name, r.ContactName, r.Phone, r.Address, r.GasCustomer, r.UCOSupplier, r.Version)
	if err != nil {
		return fmt.Errorf("update restaurant %s: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update restaurant %s: %w", r.ID, domain.ErrConflict)
	}
	r.Version++
	return nil
}

// DeleteRestaurant removes a restaurant.
func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete restaurant %s", id)
}

func scanRestaurant(row scannable) (restaurant.Restaurant, error) {
	var r restaurant.Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.ContactName, &r.Phone, &r.Address,
		&r.GasCustomer, &r.UCOSupplier, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}
