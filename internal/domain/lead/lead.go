// Package lead defines the sales-pipeline lead entity.
package lead

import "time"

// Status is the pipeline stage of a lead.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusNegotiating Status = "negotiating"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
)

// Lead tracks a prospective or existing customer relationship,
// distinct from the restaurant entity it references.
type Lead struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	Status       Status     `json:"status"`
	Source       string     `json:"source,omitempty"`
	NextAction   string     `json:"next_action,omitempty"`
	NextActionAt *time.Time `json:"next_action_at,omitempty"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateRequest holds the fields needed to open a lead.
type CreateRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Source       string `json:"source,omitempty"`
}
