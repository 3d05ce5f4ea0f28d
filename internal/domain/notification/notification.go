// Package notification defines the persisted user inbox entity.
package notification

import "time"

// Notification is one row of a user's inbox. Rows are only ever
// mutated to flip the read flag; there is no deletion or TTL.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
