package postgres

import (
	"context"
	"fmt"

	"github.com/garzadist/fieldops/internal/domain/activity"
)

const activityColumns = `id, COALESCE(actor_id::text, ''), verb, entity_kind, COALESCE(entity_id::text, ''), detail, created_at`

// AppendActivity writes one activity-log entry.
func (s *Store) AppendActivity(ctx context.Context, e *activity.Entry) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO activity_log (actor_id, verb, entity_kind, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		nullIfEmpty(e.ActorID), e.Verb, e.EntityKind, nullIfEmpty(e.EntityID), e.Detail,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// ListActivity returns the most recent activity entries.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+activityColumns+` FROM activity_log
		 ORDER BY created_at DESC
		 LIMIT CASE WHEN $1 > 0 THEN $1 END`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	return collectActivity(rows)
}

// ListActivityByEntity returns recent activity for one entity.
func (s *Store) ListActivityByEntity(ctx context.Context, kind, id string, limit int) ([]activity.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+activityColumns+` FROM activity_log
		 WHERE entity_kind = $1 AND entity_id = $2::uuid
		 ORDER BY created_at DESC
		 LIMIT CASE WHEN $3 > 0 THEN $3 END`, kind, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity by entity: %w", err)
	}
	defer rows.Close()
	return collectActivity(rows)
}

func collectActivity(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]activity.Entry, error) {
	var entries []activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Verb, &e.EntityKind, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
