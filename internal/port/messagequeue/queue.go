// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Subjects published by the service. UI clients and the websocket
// bridge subscribe to these as a change feed for badges and panels.
const (
	SubjectTaskCreated         = "tasks.created"
	SubjectTaskCompleted       = "tasks.completed"
	SubjectNotificationCreated = "notifications.created"
)

// Handler processes a single message from a subject.
type Handler func(subject string, data []byte) error

// Queue is the port interface for publish/subscribe messaging.
type Queue interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Subscribe(ctx context.Context, subject string, handler Handler) (cancel func(), err error)
	Close() error
}
