package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garzadist/fieldops/internal/adapter/otel"
	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/domain/lead"
	"github.com/garzadist/fieldops/internal/domain/order"
	"github.com/garzadist/fieldops/internal/domain/sideeffect"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/port/database"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

// OutcomeService records what happened when a field task was worked:
// the outcome audit row is the operation; the order, lead update, task
// completion, activity entry, and escalation resolution that follow
// from it are each attempted once and absorbed on failure.
type OutcomeService struct {
	store   database.Store
	queue   messagequeue.Queue
	metrics *otel.Metrics
	now     func() time.Time
}

// NewOutcomeService creates an OutcomeService. queue and metrics may
// be nil.
func NewOutcomeService(store database.Store, queue messagequeue.Queue, metrics *otel.Metrics) *OutcomeService {
	return &OutcomeService{store: store, queue: queue, metrics: metrics, now: time.Now}
}

// Record closes out a task. It returns the ID of the order created for
// a won deal (empty otherwise) and the aggregate of what succeeded.
// The outcome row is the only hard requirement.
func (s *OutcomeService) Record(ctx context.Context, taskID string, req task.OutcomeRequest, actorID string) (string, sideeffect.Outcome) {
	var out sideeffect.Outcome

	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		out.Primary = err
		return "", out
	}

	nextActionAt, err := parseNextActionDate(req.NextActionDate)
	if err != nil {
		out.Primary = err
		return "", out
	}

	orderID := s.maybeCreateOrder(ctx, t, req, actorID, &out)
	s.maybeUpdateLead(ctx, t, req, nextActionAt, &out)

	outcome := &task.Outcome{
		TaskID:         t.ID,
		LeadStatus:     req.LeadStatus,
		NextAction:     req.NextAction,
		NextActionDate: nextActionAt,
		OrderID:        orderID,
		CreatedBy:      actorID,
	}
	if err := s.store.CreateOutcome(ctx, outcome); err != nil {
		out.Primary = err
		return "", out
	}

	now := s.now()
	out.Record("task_complete", s.store.CompleteTask(ctx, t.ID, req.Notes, now))
	if s.metrics != nil {
		s.metrics.TasksCompleted.Add(ctx, 1)
	}

	out.Record("activity_log", s.store.AppendActivity(ctx, &activity.Entry{
		ActorID:    actorID,
		Verb:       "completed_task",
		EntityKind: "task",
		EntityID:   t.ID,
		Detail:     t.Title,
	}))

	_, err = s.store.ResolveEscalations(ctx, t.ID, actorID, now)
	out.Record("resolve_escalations", err)

	s.announceCompleted(ctx, t, &out)

	for _, f := range out.Failed() {
		slog.Error("outcome side effect failed", "task_id", t.ID, "effect", f.Name, "error", f.Err)
	}
	return orderID, out
}

// maybeCreateOrder opens a pending-confirmation order when the close-out
// asked for one and the task is linked to a restaurant. The order number
// comes from the database generator, with a timestamp fallback so a
// sequence hiccup never loses the sale.
func (s *OutcomeService) maybeCreateOrder(ctx context.Context, t *task.FollowUpTask, req task.OutcomeRequest, actorID string, out *sideeffect.Outcome) string {
	if !req.CreateOrder || t.RestaurantID == "" {
		return ""
	}

	number, err := s.store.NextOrderNumber(ctx)
	if err != nil {
		slog.Warn("order number generator failed, using fallback", "task_id", t.ID, "error", err)
		number = order.FallbackNumber(s.now())
	}

	o := &order.Order{
		OrderNumber:  number,
		RestaurantID: t.RestaurantID,
		Status:       order.StatusPendingConfirmation,
		Total:        0,
		Notes:        req.OrderNotes,
		CreatedBy:    actorID,
	}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		out.Record("order_create", err)
		return ""
	}
	out.Record("order_create", nil)
	return o.ID
}

// maybeUpdateLead moves the restaurant's first lead through the
// pipeline. A restaurant without a lead is a data gap worth a warning,
// not a failure.
func (s *OutcomeService) maybeUpdateLead(ctx context.Context, t *task.FollowUpTask, req task.OutcomeRequest, nextActionAt *time.Time, out *sideeffect.Outcome) {
	if req.LeadStatus == "" || t.RestaurantID == "" {
		return
	}

	l, err := s.store.FirstLeadByRestaurant(ctx, t.RestaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Warn("no lead to update for restaurant", "restaurant_id", t.RestaurantID, "task_id", t.ID)
		}
		out.Record("lead_update", err)
		return
	}

	out.Record("lead_update",
		s.store.UpdateLeadStatus(ctx, l.ID, lead.Status(req.LeadStatus), req.NextAction, nextActionAt))
}

func (s *OutcomeService) announceCompleted(ctx context.Context, t *task.FollowUpTask, out *sideeffect.Outcome) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(map[string]string{"task_id": t.ID, "title": t.Title})
	if err == nil {
		err = s.queue.Publish(ctx, messagequeue.SubjectTaskCompleted, data)
	}
	out.Record("queue_publish", err)
}

func parseNextActionDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad next_action_date %q", domain.ErrValidation, s)
	}
	t = t.UTC()
	return &t, nil
}
