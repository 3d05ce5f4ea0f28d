// Package escalation defines the overdue-task escalation entity.
package escalation

import "time"

// Escalation records that an overdue follow-up task was raised to a
// manager. Rows are keyed by (task_id, escalated_to) so repeated sweep
// runs cannot duplicate the fan-out; they stay open until the task's
// outcome is recorded.
type Escalation struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	EscalatedTo string     `json:"escalated_to"`
	Reason      string     `json:"reason"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Open reports whether the escalation is still unresolved.
func (e Escalation) Open() bool {
	return e.ResolvedAt == nil
}
