// Package service contains application services.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/port/database"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

// NotificationService owns the persisted user inbox and the
// notifications change feed.
type NotificationService struct {
	store database.Store
	queue messagequeue.Queue
}

// NewNotificationService creates a NotificationService. queue may be
// nil; the change feed is then skipped.
func NewNotificationService(store database.Store, queue messagequeue.Queue) *NotificationService {
	return &NotificationService{store: store, queue: queue}
}

// Push writes an inbox row and announces it on the change feed. The
// row is the operation; the publish is best-effort.
func (s *NotificationService) Push(ctx context.Context, n *notification.Notification) error {
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return err
	}

	if s.queue != nil {
		data, err := json.Marshal(n)
		if err == nil {
			err = s.queue.Publish(ctx, messagequeue.SubjectNotificationCreated, data)
		}
		if err != nil {
			slog.Error("notification feed publish failed", "notification_id", n.ID, "error", err)
		}
	}
	return nil
}

// List returns a user's inbox, unread first, then newest.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	return s.store.ListNotifications(ctx, userID, limit)
}

// MarkRead flips one of the user's notifications to read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.store.MarkNotificationRead(ctx, id, userID)
}

// MarkAllRead flips all of the user's unread notifications and returns
// how many rows changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// UnreadCount returns the user's unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}
