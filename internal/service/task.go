package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/garzadist/fieldops/internal/adapter/otel"
	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/calendar"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/domain/sideeffect"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/port/calendarmirror"
	"github.com/garzadist/fieldops/internal/port/database"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

// TaskService handles follow-up task business logic. The core insert
// is the operation; everything that hangs off it (calendar rows, the
// external mirror, the assignee's inbox, the change feed) is attempted
// once and absorbed on failure.
type TaskService struct {
	store         database.Store
	queue         messagequeue.Queue
	notifications *NotificationService
	mirror        calendarmirror.Mirror
	metrics       *otel.Metrics
}

// NewTaskService creates a TaskService. queue, mirror, and metrics may
// be nil.
func NewTaskService(store database.Store, queue messagequeue.Queue, notifications *NotificationService, mirror calendarmirror.Mirror, metrics *otel.Metrics) *TaskService {
	return &TaskService{
		store:         store,
		queue:         queue,
		notifications: notifications,
		mirror:        mirror,
		metrics:       metrics,
	}
}

// List returns tasks filtered by status and assignee. Empty filters
// match everything; limit <= 0 means no limit.
func (s *TaskService) List(ctx context.Context, status task.Status, assigneeID string, limit int) ([]task.FollowUpTask, error) {
	return s.store.ListTasks(ctx, status, assigneeID, limit)
}

// Get returns a task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*task.FollowUpTask, error) {
	return s.store.GetTask(ctx, id)
}

// Outcomes returns the audit trail of a task's close-outs.
func (s *TaskService) Outcomes(ctx context.Context, taskID string) ([]task.Outcome, error) {
	return s.store.ListOutcomesByTask(ctx, taskID)
}

// Create inserts a pending task and fans out its side effects. The
// returned outcome reports the insert as Primary and each side effect
// by name; callers decide how much of that to surface.
func (s *TaskService) Create(ctx context.Context, req task.CreateRequest, createdBy string) (*task.FollowUpTask, sideeffect.Outcome) {
	var out sideeffect.Outcome

	t, err := s.buildTask(req, createdBy)
	if err != nil {
		out.Primary = err
		return nil, out
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		out.Primary = err
		return nil, out
	}
	if s.metrics != nil {
		s.metrics.TasksCreated.Add(ctx, 1)
	}

	s.mirrorDueWindow(ctx, t, &out)
	s.notifyAssignee(ctx, t, &out)
	s.announce(ctx, messagequeue.SubjectTaskCreated, t, &out)

	for _, f := range out.Failed() {
		slog.Error("task side effect failed", "task_id", t.ID, "effect", f.Name, "error", f.Err)
	}
	return t, out
}

func (s *TaskService) buildTask(req task.CreateRequest, createdBy string) (*task.FollowUpTask, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if req.AssigneeID == "" {
		return nil, fmt.Errorf("%w: assignee_id is required", domain.ErrValidation)
	}
	dueAt, err := req.DueAt()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	typ := req.Type
	if typ == "" {
		typ = task.TypeLeadFollowUp
	}
	switch typ {
	case task.TypeLeadFollowUp, task.TypeVisit, task.TypeCollection, task.TypeDelivery:
	default:
		return nil, fmt.Errorf("%w: unknown task type %q", domain.ErrValidation, typ)
	}

	priority := req.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}
	switch priority {
	case task.PriorityLow, task.PriorityMedium, task.PriorityHigh, task.PriorityUrgent:
	default:
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, priority)
	}

	return &task.FollowUpTask{
		Title:        req.Title,
		Description:  req.Description,
		Type:         typ,
		Status:       task.StatusPending,
		Priority:     priority,
		DueAt:        dueAt,
		AssigneeID:   req.AssigneeID,
		CreatedBy:    createdBy,
		RestaurantID: req.RestaurantID,
		LeadID:       req.LeadID,
	}, nil
}

// mirrorDueWindow writes the local calendar row and, when configured,
// pushes the same window to the external calendar.
func (s *TaskService) mirrorDueWindow(ctx context.Context, t *task.FollowUpTask, out *sideeffect.Outcome) {
	event := calendar.Event{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartsAt:    t.DueAt,
		EndsAt:      t.DueAt.Add(calendar.EventDuration),
	}
	out.Record("calendar_event", s.store.CreateCalendarEvent(ctx, &event))

	if s.mirror != nil {
		out.Record(s.mirror.Name(), s.mirror.CreateEvent(ctx, event))
	}
}

// notifyAssignee writes the pre-due reminder into the assignee's inbox.
func (s *TaskService) notifyAssignee(ctx context.Context, t *task.FollowUpTask, out *sideeffect.Outcome) {
	n := &notification.Notification{
		UserID: t.AssigneeID,
		Title:  "Reminder: " + t.Title,
		Message: fmt.Sprintf("Follow-up %q is due at %s (reminder set for %s, 1 hour before).",
			t.Title, t.DueAt.Format("2006-01-02 15:04"), t.DueAt.Add(-time.Hour).Format("15:04")),
		Link: "/tasks/" + t.ID,
	}
	out.Record("assignee_notification", s.notifications.Push(ctx, n))
}

func (s *TaskService) announce(ctx context.Context, subject string, t *task.FollowUpTask, out *sideeffect.Outcome) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(t)
	if err == nil {
		err = s.queue.Publish(ctx, subject, data)
	}
	out.Record("queue_publish", err)
}
