// Package activity defines the append-only activity log entity.
package activity

import "time"

// Entry is one line of the activity log.
type Entry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Verb       string    `json:"verb"` // e.g. "completed_task", "created_order"
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
