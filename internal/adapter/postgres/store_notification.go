package postgres

import (
	"context"
	"fmt"

	"github.com/garzadist/fieldops/internal/domain/notification"
)

// CreateNotification inserts an inbox row for a user.
func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, message, link)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.UserID, n.Title, n.Message, n.Link,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListNotifications returns a user's inbox, unread first, newest first
// within each group. limit <= 0 means no limit.
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, title, message, link, read, created_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY read ASC, created_at DESC
		 LIMIT CASE WHEN $2 > 0 THEN $2 END`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips the read flag on a single row. The userID
// predicate keeps one user from touching another's inbox.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return execExpectOne(tag, err, "mark notification read %s", id)
}

// MarkAllNotificationsRead flips every currently-unread row for the
// user and returns how many were flipped.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountUnreadNotifications returns the badge count for a user.
func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}
