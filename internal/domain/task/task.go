// Package task defines the follow-up task domain entity.
package task

import (
	"fmt"
	"time"
)

// Status represents the current state of a follow-up task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Type classifies what kind of field work the task represents.
type Type string

const (
	TypeLeadFollowUp Type = "lead_followup"
	TypeVisit        Type = "visit"
	TypeCollection   Type = "collection"
	TypeDelivery     Type = "delivery"
)

// Priority is the urgency bucket shown to the assignee.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// FollowUpTask is a unit of field work assigned to a user, optionally
// linked to a restaurant, lead, or order. Tasks are never hard-deleted;
// completion is recorded through the status field.
type FollowUpTask struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Type            Type       `json:"type"`
	Status          Status     `json:"status"`
	Priority        Priority   `json:"priority"`
	DueAt           time.Time  `json:"due_at"`
	AssigneeID      string     `json:"assignee_id"`
	CreatedBy       string     `json:"created_by"`
	RestaurantID    string     `json:"restaurant_id,omitempty"`
	LeadID          string     `json:"lead_id,omitempty"`
	OrderID         string     `json:"order_id,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a new follow-up task.
// DueDate and DueTime arrive as the UI sends them and are combined into
// a single timestamp by DueAt.
type CreateRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Type         Type     `json:"type"`
	Priority     Priority `json:"priority"`
	DueDate      string   `json:"due_date"` // 2006-01-02
	DueTime      string   `json:"due_time"` // 15:04
	AssigneeID   string   `json:"assignee_id"`
	RestaurantID string   `json:"restaurant_id,omitempty"`
	LeadID       string   `json:"lead_id,omitempty"`
}

// DueAt combines the request's date and time parts into one UTC timestamp.
func (r CreateRequest) DueAt() (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", r.DueDate+" "+r.DueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due %q %q: %w", r.DueDate, r.DueTime, err)
	}
	return t.UTC(), nil
}

// OutcomeRequest is the payload recorded when a task is closed out.
type OutcomeRequest struct {
	LeadStatus     string `json:"lead_status,omitempty"`
	NextAction     string `json:"next_action,omitempty"`
	NextActionDate string `json:"next_action_date,omitempty"` // 2006-01-02
	CreateOrder    bool   `json:"create_order,omitempty"`
	OrderNotes     string `json:"order_notes,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Outcome is the append-only audit record of a closed-out task,
// distinct from the task's own completion fields.
type Outcome struct {
	ID             string     `json:"id"`
	TaskID         string     `json:"task_id"`
	LeadStatus     string     `json:"lead_status,omitempty"`
	NextAction     string     `json:"next_action,omitempty"`
	NextActionDate *time.Time `json:"next_action_date,omitempty"`
	OrderID        string     `json:"order_id,omitempty"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// OverdueTask is one row of the overdue aggregate: a pending task whose
// due time has passed, joined with display names for the escalation
// notification text.
type OverdueTask struct {
	TaskID         string    `json:"task_id"`
	Title          string    `json:"title"`
	RestaurantName string    `json:"restaurant_name"`
	AssigneeName   string    `json:"assignee_name"`
	DueAt          time.Time `json:"due_at"`
	HoursOverdue   float64   `json:"hours_overdue"`
}
