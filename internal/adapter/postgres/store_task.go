package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/garzadist/fieldops/internal/domain/task"
)

const taskColumns = `id, title, description, type, status, priority, due_at, assignee_id,
	COALESCE(created_by::text, ''), COALESCE(restaurant_id::text, ''), COALESCE(lead_id::text, ''),
	COALESCE(order_id::text, ''), completed_at, completion_notes, created_at, updated_at`

// CreateTask inserts a new follow-up task and fills the generated fields.
func (s *Store) CreateTask(ctx context.Context, t *task.FollowUpTask) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, type, status, priority, due_at, assignee_id, created_by, restaurant_id, lead_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		t.Title, t.Description, string(t.Type), string(t.Status), string(t.Priority), t.DueAt,
		t.AssigneeID, nullIfEmpty(t.CreatedBy), nullIfEmpty(t.RestaurantID), nullIfEmpty(t.LeadID),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask returns a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*task.FollowUpTask, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		return nil, notFoundWrap(err, "get task %s", id)
	}
	return &t, nil
}

// ListTasks returns tasks filtered by status and/or assignee, newest first.
// Empty filter values match everything; limit <= 0 means no limit.
func (s *Store) ListTasks(ctx context.Context, status task.Status, assigneeID string, limit int) ([]task.FollowUpTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE ($1 = '' OR status = $1)
		   AND ($2 = '' OR assignee_id = $2::uuid)
		 ORDER BY created_at DESC
		 LIMIT CASE WHEN $3 > 0 THEN $3 END`,
		string(status), assigneeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.FollowUpTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTask marks a task completed with the given notes.
// Deliberately no version predicate: completion is last-write-wins.
func (s *Store) CompleteTask(ctx context.Context, id, notes string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET status = $2, completed_at = $3, completion_notes = $4, updated_at = now()
		 WHERE id = $1`,
		id, string(task.StatusCompleted), at, notes)
	return execExpectOne(tag, err, "complete task %s", id)
}

// ListOverdueTasks calls the overdue_follow_ups() aggregate: every
// pending task past its due time, with display names and hours overdue.
func (s *Store) ListOverdueTasks(ctx context.Context) ([]task.OverdueTask, error) {
	rows, err := s.pool.Query(ctx, `SELECT task_id, title, restaurant_name, assignee_name, due_at, hours_overdue FROM overdue_follow_ups()`)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	defer rows.Close()

	var overdue []task.OverdueTask
	for rows.Next() {
		var o task.OverdueTask
		if err := rows.Scan(&o.TaskID, &o.Title, &o.RestaurantName, &o.AssigneeName, &o.DueAt, &o.HoursOverdue); err != nil {
			return nil, fmt.Errorf("scan overdue task: %w", err)
		}
		overdue = append(overdue, o)
	}
	return overdue, rows.Err()
}

// ListTasksDueBetween returns pending tasks of the given type whose due
// time falls within [from, to].
func (s *Store) ListTasksDueBetween(ctx context.Context, typ task.Type, from, to time.Time) ([]task.FollowUpTask, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE type = $1 AND status = $2 AND due_at BETWEEN $3 AND $4
		 ORDER BY due_at ASC`,
		string(typ), string(task.StatusPending), from, to)
	if err != nil {
		return nil, fmt.Errorf("list tasks due between: %w", err)
	}
	defer rows.Close()

	var tasks []task.FollowUpTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateOutcome inserts a task-outcome audit row.
func (s *Store) CreateOutcome(ctx context.Context, o *task.Outcome) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO task_outcomes (task_id, lead_status, next_action, next_action_date, order_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		o.TaskID, o.LeadStatus, o.NextAction, nullTime(o.NextActionDate), nullIfEmpty(o.OrderID), nullIfEmpty(o.CreatedBy),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create outcome: %w", err)
	}
	return nil
}

// ListOutcomesByTask returns the outcome audit trail for a task, oldest first.
func (s *Store) ListOutcomesByTask(ctx context.Context, taskID string) ([]task.Outcome, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, task_id, lead_status, next_action, next_action_date, COALESCE(order_id::text, ''),
		        COALESCE(created_by::text, ''), created_at
		 FROM task_outcomes WHERE task_id = $1 ORDER BY created_at ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []task.Outcome
	for rows.Next() {
		var o task.Outcome
		if err := rows.Scan(&o.ID, &o.TaskID, &o.LeadStatus, &o.NextAction, &o.NextActionDate, &o.OrderID, &o.CreatedBy, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func scanTask(row scannable) (task.FollowUpTask, error) {
	var t task.FollowUpTask
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Type, &t.Status, &t.Priority, &t.DueAt, &t.AssigneeID,
		&t.CreatedBy, &t.RestaurantID, &t.LeadID, &t.OrderID,
		&t.CompletedAt, &t.CompletionNotes, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}
