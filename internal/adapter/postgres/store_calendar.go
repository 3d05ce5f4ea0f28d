package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/garzadist/fieldops/internal/domain/calendar"
)

// CreateCalendarEvent inserts a mirrored due-window event.
func (s *Store) CreateCalendarEvent(ctx context.Context, e *calendar.Event) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO calendar_events (task_id, title, description, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.TaskID, e.Title, e.Description, e.StartsAt, e.EndsAt,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	return nil
}

// ListCalendarEvents returns events starting within [from, to].
func (s *Store) ListCalendarEvents(ctx context.Context, from, to time.Time) ([]calendar.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, task_id, title, description, starts_at, ends_at, created_at
		 FROM calendar_events WHERE starts_at BETWEEN $1 AND $2 ORDER BY starts_at ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		var e calendar.Event
		if err := rows.Scan(&e.ID, &e.TaskID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
