// Package calendar defines the calendar-event entity mirrored from tasks.
package calendar

import "time"

// EventDuration is the default span of a mirrored due-window event.
const EventDuration = 30 * time.Minute

// Event mirrors a follow-up task's due window. Events are derivative,
// best-effort rows: creation failure never rolls back the task.
type Event struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}
