package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/garzadist/fieldops/internal/domain/escalation"
)

// CreateEscalation inserts an escalation row. Rows are unique per
// (task_id, escalated_to); a conflicting insert is skipped and reported
// as created=false so the sweep can suppress the duplicate notification.
func (s *Store) CreateEscalation(ctx context.Context, e *escalation.Escalation) (bool, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO escalations (task_id, escalated_to, reason)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (task_id, escalated_to) DO NOTHING
		 RETURNING id, created_at`,
		e.TaskID, e.EscalatedTo, e.Reason,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("create escalation: %w", err)
	}
	return true, nil
}

// ListEscalations returns escalations, optionally filtered to a task
// and/or to open (unresolved) rows only, newest first.
func (s *Store) ListEscalations(ctx context.Context, taskID string, openOnly bool) ([]escalation.Escalation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, task_id, escalated_to, reason, resolved_at, COALESCE(resolved_by::text, ''), created_at
		 FROM escalations
		 WHERE ($1 = '' OR task_id = $1::uuid)
		   AND (NOT $2 OR resolved_at IS NULL)
		 ORDER BY created_at DESC`,
		taskID, openOnly)
	if err != nil {
		return nil, fmt.Errorf("list escalations: %w", err)
	}
	defer rows.Close()

	var escalations []escalation.Escalation
	for rows.Next() {
		var e escalation.Escalation
		if err := rows.Scan(&e.ID, &e.TaskID, &e.EscalatedTo, &e.Reason, &e.ResolvedAt, &e.ResolvedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan escalation: %w", err)
		}
		escalations = append(escalations, e)
	}
	return escalations, rows.Err()
}

// ResolveEscalations closes every open escalation for a task and
// returns how many were closed.
func (s *Store) ResolveEscalations(ctx context.Context, taskID, resolvedBy string, at time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE escalations SET resolved_at = $2, resolved_by = $3
		 WHERE task_id = $1 AND resolved_at IS NULL`,
		taskID, at, nullIfEmpty(resolvedBy))
	if err != nil {
		return 0, fmt.Errorf("resolve escalations for task %s: %w", taskID, err)
	}
	return tag.RowsAffected(), nil
}
