package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventNotificationCreated = "notification.created"
	EventTaskCompleted       = "task.completed"
)

// NotificationEvent is sent to the recipient's connections when a new
// inbox notification is written, so an open client can bump its unread
// badge without polling.
type NotificationEvent struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Title          string `json:"title"`
	Link           string `json:"link,omitempty"`
}

// TaskCompletedEvent is broadcast to every connection when a follow-up
// task is closed. The field names match the payload published on the
// task change feed.
type TaskCompletedEvent struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

// BroadcastEvent is a convenience method that marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
