// Package database defines the database store port (interface).
package database

import (
	"context"
	"time"

	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/domain/calendar"
	"github.com/garzadist/fieldops/internal/domain/escalation"
	"github.com/garzadist/fieldops/internal/domain/lead"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/domain/order"
	"github.com/garzadist/fieldops/internal/domain/restaurant"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/domain/user"
)

// Store is the port interface for database operations.
type Store interface {
	// Tasks
	CreateTask(ctx context.Context, t *task.FollowUpTask) error
	GetTask(ctx context.Context, id string) (*task.FollowUpTask, error)
	ListTasks(ctx context.Context, status task.Status, assigneeID string, limit int) ([]task.FollowUpTask, error)
	CompleteTask(ctx context.Context, id, notes string, at time.Time) error
	ListOverdueTasks(ctx context.Context) ([]task.OverdueTask, error)
	ListTasksDueBetween(ctx context.Context, typ task.Type, from, to time.Time) ([]task.FollowUpTask, error)

	// Task outcomes
	CreateOutcome(ctx context.Context, o *task.Outcome) error
	ListOutcomesByTask(ctx context.Context, taskID string) ([]task.Outcome, error)

	// Calendar events
	CreateCalendarEvent(ctx context.Context, e *calendar.Event) error
	ListCalendarEvents(ctx context.Context, from, to time.Time) ([]calendar.Event, error)

	// Notifications
	CreateNotification(ctx context.Context, n *notification.Notification) error
	ListNotifications(ctx context.Context, userID string, limit int) ([]notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)

	// Escalations
	CreateEscalation(ctx context.Context, e *escalation.Escalation) (created bool, err error)
	ListEscalations(ctx context.Context, taskID string, openOnly bool) ([]escalation.Escalation, error)
	ResolveEscalations(ctx context.Context, taskID, resolvedBy string, at time.Time) (int64, error)

	// Restaurants
	CreateRestaurant(ctx context.Context, req restaurant.CreateRequest) (*restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	UpdateRestaurant(ctx context.Context, r *restaurant.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) error

	// Leads
	CreateLead(ctx context.Context, req lead.CreateRequest) (*lead.Lead, error)
	GetLead(ctx context.Context, id string) (*lead.Lead, error)
	ListLeadsByRestaurant(ctx context.Context, restaurantID string) ([]lead.Lead, error)
	FirstLeadByRestaurant(ctx context.Context, restaurantID string) (*lead.Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status lead.Status, nextAction string, nextActionAt *time.Time) error

	// Orders
	NextOrderNumber(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, o *order.Order) error
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	ListOrdersByRestaurant(ctx context.Context, restaurantID string) ([]order.Order, error)

	// Activity log
	AppendActivity(ctx context.Context, e *activity.Entry) error
	ListActivity(ctx context.Context, limit int) ([]activity.Entry, error)
	ListActivityByEntity(ctx context.Context, kind, id string, limit int) ([]activity.Entry, error)

	// Users
	GetUser(ctx context.Context, id string) (*user.User, error)
	ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error)
}
