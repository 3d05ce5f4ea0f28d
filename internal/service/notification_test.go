package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

func TestNotificationPushAnnouncesOnFeed(t *testing.T) {
	store := &mockStore{}
	queue := &mockQueue{}
	svc := NewNotificationService(store, queue)

	n := &notification.Notification{UserID: "u1", Title: "hello"}
	if err := svc.Push(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == "" {
		t.Fatal("notification not persisted")
	}
	if len(queue.published) != 1 || queue.published[0].subject != messagequeue.SubjectNotificationCreated {
		t.Fatalf("unexpected publishes: %+v", queue.published)
	}
}

func TestNotificationPushFeedFailureTolerated(t *testing.T) {
	store := &mockStore{}
	queue := &mockQueue{publishErr: errors.New("nats down")}
	svc := NewNotificationService(store, queue)

	if err := svc.Push(context.Background(), &notification.Notification{UserID: "u1"}); err != nil {
		t.Fatalf("feed failure must not fail the push: %v", err)
	}
	if len(store.notifications) != 1 {
		t.Fatal("row not written")
	}
}

func TestNotificationPushRowFailureIsFatal(t *testing.T) {
	store := &mockStore{createNotificationErr: errors.New("db down")}
	svc := NewNotificationService(store, &mockQueue{})

	if err := svc.Push(context.Background(), &notification.Notification{UserID: "u1"}); err == nil {
		t.Fatal("expected error when the row cannot be written")
	}
}

func TestNotificationMarkReadScopedToUser(t *testing.T) {
	store := &mockStore{notifications: []notification.Notification{
		{ID: "n1", UserID: "u1"},
	}}
	svc := NewNotificationService(store, nil)

	// Another user cannot flip someone else's notification.
	err := svc.MarkRead(context.Background(), "n1", "u2")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign notification, got %v", err)
	}

	if err := svc.MarkRead(context.Background(), "n1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.notifications[0].Read {
		t.Fatal("notification not marked read")
	}
}

func TestNotificationMarkAllReadCountsOnlyOwnUnread(t *testing.T) {
	store := &mockStore{notifications: []notification.Notification{
		{ID: "n1", UserID: "u1"},
		{ID: "n2", UserID: "u1", Read: true},
		{ID: "n3", UserID: "u1"},
		{ID: "n4", UserID: "u2"},
	}}
	svc := NewNotificationService(store, nil)

	updated, err := svc.MarkAllRead(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}

	// The other user's inbox is untouched.
	count, err := svc.UnreadCount(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected u2 unread 1, got %d", count)
	}
}
