// Package order defines the sales order entity.
package order

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusPendingConfirmation is the state orders are created in by
	// the outcome recorder. Line items and totals are filled in later
	// through the order-management flow.
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusDelivered           Status = "delivered"
	StatusCancelled           Status = "cancelled"
)

// Order is a gas delivery sales order.
type Order struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	RestaurantID string    `json:"restaurant_id"`
	Status       Status    `json:"status"`
	Total        float64   `json:"total"`
	Notes        string    `json:"notes,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// FallbackNumber builds a timestamp-based order number, used when the
// database-side generator is unavailable.
func FallbackNumber(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102150405")
}
