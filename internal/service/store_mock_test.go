package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/domain/calendar"
	"github.com/garzadist/fieldops/internal/domain/escalation"
	"github.com/garzadist/fieldops/internal/domain/lead"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/domain/order"
	"github.com/garzadist/fieldops/internal/domain/restaurant"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/domain/user"
	"github.com/garzadist/fieldops/internal/port/database"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is a minimal in-memory implementation of database.Store for testing.
type mockStore struct {
	tasks          []task.FollowUpTask
	outcomes       []task.Outcome
	calendarEvents []calendar.Event
	notifications  []notification.Notification
	escalations    []escalation.Escalation
	restaurants    []restaurant.Restaurant
	leads          []lead.Lead
	orders         []order.Order
	activities     []activity.Entry
	users          []user.User
	overdue        []task.OverdueTask

	orderNumber string

	// Error hooks — set these to inject failures.
	createTaskErr          error
	getTaskErr             error
	completeTaskErr        error
	listOverdueErr         error
	listDueBetweenErr      error
	createOutcomeErr       error
	createCalendarEventErr error
	createNotificationErr  error
	createEscalationErr    error
	nextOrderNumberErr     error
	createOrderErr         error
	firstLeadErr           error
	updateLeadStatusErr    error
	appendActivityErr      error
	resolveEscalationsErr  error
	listUsersByRoleErr     error

	seq int
}

func (m *mockStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// --- Tasks ---

func (m *mockStore) CreateTask(_ context.Context, t *task.FollowUpTask) error {
	if m.createTaskErr != nil {
		return m.createTaskErr
	}
	t.ID = m.nextID("task")
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.tasks = append(m.tasks, *t)
	return nil
}

func (m *mockStore) GetTask(_ context.Context, id string) (*task.FollowUpTask, error) {
	if m.getTaskErr != nil {
		return nil, m.getTaskErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListTasks(_ context.Context, status task.Status, assigneeID string, limit int) ([]task.FollowUpTask, error) {
	var out []task.FollowUpTask
	for _, t := range m.tasks {
		if status != "" && t.Status != status {
			continue
		}
		if assigneeID != "" && t.AssigneeID != assigneeID {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockStore) CompleteTask(_ context.Context, id, notes string, at time.Time) error {
	if m.completeTaskErr != nil {
		return m.completeTaskErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Status = task.StatusCompleted
			m.tasks[i].CompletionNotes = notes
			m.tasks[i].CompletedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListOverdueTasks(_ context.Context) ([]task.OverdueTask, error) {
	return m.overdue, m.listOverdueErr
}

func (m *mockStore) ListTasksDueBetween(_ context.Context, typ task.Type, from, to time.Time) ([]task.FollowUpTask, error) {
	if m.listDueBetweenErr != nil {
		return nil, m.listDueBetweenErr
	}
	var out []task.FollowUpTask
	for _, t := range m.tasks {
		if t.Type != typ || t.Status != task.StatusPending {
			continue
		}
		if t.DueAt.Before(from) || t.DueAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// --- Task outcomes ---

func (m *mockStore) CreateOutcome(_ context.Context, o *task.Outcome) error {
	if m.createOutcomeErr != nil {
		return m.createOutcomeErr
	}
	o.ID = m.nextID("outcome")
	o.CreatedAt = time.Now()
	m.outcomes = append(m.outcomes, *o)
	return nil
}

func (m *mockStore) ListOutcomesByTask(_ context.Context, taskID string) ([]task.Outcome, error) {
	var out []task.Outcome
	for _, o := range m.outcomes {
		if o.TaskID == taskID {
			out = append(out, o)
		}
	}
	return out, nil
}

// --- Calendar events ---

func (m *mockStore) CreateCalendarEvent(_ context.Context, e *calendar.Event) error {
	if m.createCalendarEventErr != nil {
		return m.createCalendarEventErr
	}
	e.ID = m.nextID("event")
	e.CreatedAt = time.Now()
	m.calendarEvents = append(m.calendarEvents, *e)
	return nil
}

func (m *mockStore) ListCalendarEvents(_ context.Context, from, to time.Time) ([]calendar.Event, error) {
	var out []calendar.Event
	for _, e := range m.calendarEvents {
		if !e.StartsAt.Before(from) && !e.StartsAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- Notifications ---

func (m *mockStore) CreateNotification(_ context.Context, n *notification.Notification) error {
	if m.createNotificationErr != nil {
		return m.createNotificationErr
	}
	n.ID = m.nextID("notif")
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockStore) ListNotifications(_ context.Context, userID string, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockStore) MarkNotificationRead(_ context.Context, id, userID string) error {
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].UserID == userID {
			m.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) MarkAllNotificationsRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i := range m.notifications {
		if m.notifications[i].UserID == userID && !m.notifications[i].Read {
			m.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CountUnreadNotifications(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// --- Escalations ---

func (m *mockStore) CreateEscalation(_ context.Context, e *escalation.Escalation) (bool, error) {
	if m.createEscalationErr != nil {
		return false, m.createEscalationErr
	}
	for _, existing := range m.escalations {
		if existing.TaskID == e.TaskID && existing.EscalatedTo == e.EscalatedTo {
			return false, nil
		}
	}
	e.ID = m.nextID("esc")
	e.CreatedAt = time.Now()
	m.escalations = append(m.escalations, *e)
	return true, nil
}

func (m *mockStore) ListEscalations(_ context.Context, taskID string, openOnly bool) ([]escalation.Escalation, error) {
	var out []escalation.Escalation
	for _, e := range m.escalations {
		if taskID != "" && e.TaskID != taskID {
			continue
		}
		if openOnly && !e.Open() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockStore) ResolveEscalations(_ context.Context, taskID, resolvedBy string, at time.Time) (int64, error) {
	if m.resolveEscalationsErr != nil {
		return 0, m.resolveEscalationsErr
	}
	var n int64
	for i := range m.escalations {
		if m.escalations[i].TaskID == taskID && m.escalations[i].Open() {
			m.escalations[i].ResolvedAt = &at
			m.escalations[i].ResolvedBy = resolvedBy
			n++
		}
	}
	return n, nil
}

// --- Restaurants ---

func (m *mockStore) CreateRestaurant(_ context.Context, req restaurant.CreateRequest) (*restaurant.Restaurant, error) {
	r := restaurant.Restaurant{
		ID:          m.nextID("rest"),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Address:     req.Address,
		GasCustomer: req.GasCustomer,
		UCOSupplier: req.UCOSupplier,
		Version:     1,
	}
	m.restaurants = append(m.restaurants, r)
	return &r, nil
}

func (m *mockStore) GetRestaurant(_ context.Context, id string) (*restaurant.Restaurant, error) {
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			return &m.restaurants[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListRestaurants(_ context.Context) ([]restaurant.Restaurant, error) {
	return m.restaurants, nil
}

func (m *mockStore) UpdateRestaurant(_ context.Context, r *restaurant.Restaurant) error {
	for i := range m.restaurants {
		if m.restaurants[i].ID == r.ID {
			if m.restaurants[i].Version != r.Version {
				return domain.ErrConflict
			}
			r.Version++
			m.restaurants[i] = *r
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteRestaurant(_ context.Context, id string) error {
	for i := range m.restaurants {
		if m.restaurants[i].ID == id {
			m.restaurants = append(m.restaurants[:i], m.restaurants[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Leads ---

func (m *mockStore) CreateLead(_ context.Context, req lead.CreateRequest) (*lead.Lead, error) {
	l := lead.Lead{
		ID:           m.nextID("lead"),
		RestaurantID: req.RestaurantID,
		Status:       lead.StatusNew,
		Source:       req.Source,
		Version:      1,
		CreatedAt:    time.Now(),
	}
	m.leads = append(m.leads, l)
	return &l, nil
}

func (m *mockStore) GetLead(_ context.Context, id string) (*lead.Lead, error) {
	for i := range m.leads {
		if m.leads[i].ID == id {
			return &m.leads[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListLeadsByRestaurant(_ context.Context, restaurantID string) ([]lead.Lead, error) {
	var out []lead.Lead
	for _, l := range m.leads {
		if l.RestaurantID == restaurantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockStore) FirstLeadByRestaurant(_ context.Context, restaurantID string) (*lead.Lead, error) {
	if m.firstLeadErr != nil {
		return nil, m.firstLeadErr
	}
	for i := range m.leads {
		if m.leads[i].RestaurantID == restaurantID {
			return &m.leads[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateLeadStatus(_ context.Context, id string, status lead.Status, nextAction string, nextActionAt *time.Time) error {
	if m.updateLeadStatusErr != nil {
		return m.updateLeadStatusErr
	}
	for i := range m.leads {
		if m.leads[i].ID == id {
			m.leads[i].Status = status
			if nextAction != "" {
				m.leads[i].NextAction = nextAction
			}
			if nextActionAt != nil {
				m.leads[i].NextActionAt = nextActionAt
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Orders ---

func (m *mockStore) NextOrderNumber(_ context.Context) (string, error) {
	if m.nextOrderNumberErr != nil {
		return "", m.nextOrderNumberErr
	}
	if m.orderNumber != "" {
		return m.orderNumber, nil
	}
	return "ORD-2026-000001", nil
}

func (m *mockStore) CreateOrder(_ context.Context, o *order.Order) error {
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	o.ID = m.nextID("order")
	o.CreatedAt = time.Now()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListOrdersByRestaurant(_ context.Context, restaurantID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	return out, nil
}

// --- Activity log ---

func (m *mockStore) AppendActivity(_ context.Context, e *activity.Entry) error {
	if m.appendActivityErr != nil {
		return m.appendActivityErr
	}
	e.ID = m.nextID("act")
	e.CreatedAt = time.Now()
	m.activities = append(m.activities, *e)
	return nil
}

func (m *mockStore) ListActivity(_ context.Context, limit int) ([]activity.Entry, error) {
	if limit > 0 && limit < len(m.activities) {
		return m.activities[:limit], nil
	}
	return m.activities, nil
}

func (m *mockStore) ListActivityByEntity(_ context.Context, kind, id string, limit int) ([]activity.Entry, error) {
	var out []activity.Entry
	for _, e := range m.activities {
		if e.EntityKind == kind && e.EntityID == id {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// --- Users ---

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsersByRole(_ context.Context, role user.Role) ([]user.User, error) {
	if m.listUsersByRoleErr != nil {
		return nil, m.listUsersByRoleErr
	}
	var out []user.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// mockQueue implements messagequeue.Queue for testing.
type mockQueue struct {
	published []struct {
		subject string
		data    []byte
	}
	publishErr error
}

func (q *mockQueue) Publish(_ context.Context, subject string, data []byte) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, struct {
		subject string
		data    []byte
	}{subject, data})
	return nil
}

func (q *mockQueue) Subscribe(_ context.Context, _ string, _ messagequeue.Handler) (func(), error) {
	return func() {}, nil
}

func (q *mockQueue) Close() error { return nil }

// mockMirror implements calendarmirror.Mirror for testing.
type mockMirror struct {
	events    []calendar.Event
	createErr error
}

func (m *mockMirror) Name() string { return "mock-calendar" }

func (m *mockMirror) CreateEvent(_ context.Context, e calendar.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events = append(m.events, e)
	return nil
}
