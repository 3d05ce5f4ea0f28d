package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/garzadist/fieldops/internal/domain/lead"
)

const leadColumns = `id, restaurant_id, status, source, next_action, next_action_at, version, created_at, updated_at`

// CreateLead opens a new lead for a restaurant.
func (s *Store) CreateLead(ctx context.Context, req lead.CreateRequest) (*lead.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO leads (restaurant_id, source)
		 VALUES ($1, $2)
		 RETURNING `+leadColumns,
		req.RestaurantID, req.Source)

	l, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return &l, nil
}

// GetLead returns a lead by ID.
func (s *Store) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	l, err := scanLead(row)
	if err != nil {
		return nil, notFoundWrap(err, "get lead %s", id)
	}
	return &l, nil
}

// ListLeadsByRestaurant returns the leads for a restaurant, oldest first.
func (s *Store) ListLeadsByRestaurant(ctx context.Context, restaurantID string) ([]lead.Lead, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE restaurant_id = $1 ORDER BY created_at ASC`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// FirstLeadByRestaurant returns the earliest lead for a restaurant.
func (s *Store) FirstLeadByRestaurant(ctx context.Context, restaurantID string) (*lead.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE restaurant_id = $1 ORDER BY created_at ASC LIMIT 1`, restaurantID)

	l, err := scanLead(row)
	if err != nil {
		return nil, notFoundWrap(err, "first lead for restaurant %s", restaurantID)
	}
	return &l, nil
}

// UpdateLeadStatus moves a lead through the pipeline and records the
// next action. Empty nextAction leaves the current one in place.
func (s *Store) UpdateLeadStatus(ctx context.Context, id string, status lead.Status, nextAction string, nextActionAt *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE leads
		 SET status = $2,
		     next_action = CASE WHEN $3 = '' THEN next_action ELSE $3 END,
		     next_action_at = COALESCE($4, next_action_at),
		     version = version + 1,
		     updated_at = now()
		 WHERE id = $1`,
		id, string(status), nextAction, nullTime(nextActionAt))
	return execExpectOne(tag, err, "update lead status %s", id)
}

func scanLead(row scannable) (lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(&l.ID, &l.RestaurantID, &l.Status, &l.Source, &l.NextAction,
		&l.NextActionAt, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}
