package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/calendar"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/port/messagequeue"
)

func newTaskService(store *mockStore, queue *mockQueue, mirror *mockMirror) *TaskService {
	notifications := NewNotificationService(store, queue)
	if mirror == nil {
		return NewTaskService(store, queue, notifications, nil, nil)
	}
	return NewTaskService(store, queue, notifications, mirror, nil)
}

func validCreateRequest() task.CreateRequest {
	return task.CreateRequest{
		Title:      "Visit Casa Pancho",
		Type:       task.TypeLeadFollowUp,
		Priority:   task.PriorityHigh,
		DueDate:    "2026-09-01",
		DueTime:    "14:30",
		AssigneeID: "user-sales",
	}
}

func TestTaskServiceCreate(t *testing.T) {
	store := &mockStore{}
	queue := &mockQueue{}
	mirror := &mockMirror{}
	svc := newTaskService(store, queue, mirror)

	created, out := svc.Create(context.Background(), validCreateRequest(), "user-creator")
	if !out.OK() {
		t.Fatalf("unexpected error: %v", out.Primary)
	}
	if created.Status != task.StatusPending {
		t.Fatalf("expected status pending, got %q", created.Status)
	}
	if created.CreatedBy != "user-creator" {
		t.Fatalf("expected creator user-creator, got %q", created.CreatedBy)
	}
	wantDue := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	if !created.DueAt.Equal(wantDue) {
		t.Fatalf("expected due %v, got %v", wantDue, created.DueAt)
	}
	if len(out.Failed()) != 0 {
		t.Fatalf("expected no failed side effects, got %v", out.Failed())
	}

	// Calendar row spans due -> due+30m.
	if len(store.calendarEvents) != 1 {
		t.Fatalf("expected 1 calendar event, got %d", len(store.calendarEvents))
	}
	e := store.calendarEvents[0]
	if !e.StartsAt.Equal(created.DueAt) || !e.EndsAt.Equal(created.DueAt.Add(calendar.EventDuration)) {
		t.Fatalf("calendar window wrong: %v -> %v", e.StartsAt, e.EndsAt)
	}

	// External mirror got the same window.
	if len(mirror.events) != 1 {
		t.Fatalf("expected 1 mirrored event, got %d", len(mirror.events))
	}

	// Assignee got the pre-due reminder.
	if len(store.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.notifications))
	}
	if store.notifications[0].UserID != "user-sales" {
		t.Fatalf("notification went to %q", store.notifications[0].UserID)
	}

	// Change feed: one notifications.created, one tasks.created.
	subjects := map[string]int{}
	for _, p := range queue.published {
		subjects[p.subject]++
	}
	if subjects[messagequeue.SubjectTaskCreated] != 1 || subjects[messagequeue.SubjectNotificationCreated] != 1 {
		t.Fatalf("unexpected publishes: %v", subjects)
	}
}

func TestTaskServiceCreateValidation(t *testing.T) {
	svc := newTaskService(&mockStore{}, &mockQueue{}, nil)

	cases := map[string]func(*task.CreateRequest){
		"missing title":    func(r *task.CreateRequest) { r.Title = "" },
		"missing assignee": func(r *task.CreateRequest) { r.AssigneeID = "" },
		"bad due date":     func(r *task.CreateRequest) { r.DueDate = "01/09/2026" },
		"bad type":         func(r *task.CreateRequest) { r.Type = "phone_call" },
		"bad priority":     func(r *task.CreateRequest) { r.Priority = "asap" },
	}
	for name, mutate := range cases {
		req := validCreateRequest()
		mutate(&req)
		_, out := svc.Create(context.Background(), req, "u1")
		if !errors.Is(out.Primary, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, out.Primary)
		}
	}
}

func TestTaskServiceCreateDefaults(t *testing.T) {
	store := &mockStore{}
	svc := newTaskService(store, &mockQueue{}, nil)

	req := validCreateRequest()
	req.Type = ""
	req.Priority = ""

	created, out := svc.Create(context.Background(), req, "u1")
	if !out.OK() {
		t.Fatalf("unexpected error: %v", out.Primary)
	}
	if created.Type != task.TypeLeadFollowUp {
		t.Fatalf("expected default type lead_followup, got %q", created.Type)
	}
	if created.Priority != task.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", created.Priority)
	}
}

func TestTaskServiceCreateInsertFailureAborts(t *testing.T) {
	store := &mockStore{createTaskErr: errors.New("db down")}
	svc := newTaskService(store, &mockQueue{}, nil)

	created, out := svc.Create(context.Background(), validCreateRequest(), "u1")
	if out.OK() {
		t.Fatal("expected primary failure")
	}
	if created != nil {
		t.Fatal("expected nil task on primary failure")
	}
	// No side effects after an aborted insert.
	if len(store.calendarEvents) != 0 || len(store.notifications) != 0 {
		t.Fatal("side effects ran after primary failure")
	}
}

func TestTaskServiceCreateSideEffectFailuresTolerated(t *testing.T) {
	store := &mockStore{
		createCalendarEventErr: errors.New("calendar table gone"),
		createNotificationErr:  errors.New("inbox gone"),
	}
	queue := &mockQueue{publishErr: errors.New("nats down")}
	mirror := &mockMirror{createErr: errors.New("google 500")}
	svc := newTaskService(store, queue, mirror)

	created, out := svc.Create(context.Background(), validCreateRequest(), "u1")
	if !out.OK() {
		t.Fatalf("side-effect failures must not fail the create: %v", out.Primary)
	}
	if created == nil || created.ID == "" {
		t.Fatal("expected a persisted task")
	}
	if len(out.Failed()) != 4 {
		t.Fatalf("expected 4 failed side effects, got %d: %v", len(out.Failed()), out.Failed())
	}
}

func TestTaskServiceCreateWithoutMirror(t *testing.T) {
	store := &mockStore{}
	svc := newTaskService(store, &mockQueue{}, nil)

	_, out := svc.Create(context.Background(), validCreateRequest(), "u1")
	if !out.OK() {
		t.Fatalf("unexpected error: %v", out.Primary)
	}
	for _, r := range out.SideEffects {
		if r.Name == "mock-calendar" {
			t.Fatal("mirror side effect recorded with no mirror configured")
		}
	}
}

func TestTaskServiceList(t *testing.T) {
	store := &mockStore{tasks: []task.FollowUpTask{
		{ID: "t1", Status: task.StatusPending, AssigneeID: "u1"},
		{ID: "t2", Status: task.StatusCompleted, AssigneeID: "u1"},
		{ID: "t3", Status: task.StatusPending, AssigneeID: "u2"},
	}}
	svc := newTaskService(store, &mockQueue{}, nil)

	got, err := svc.List(context.Background(), task.StatusPending, "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestTaskServiceGetNotFound(t *testing.T) {
	svc := newTaskService(&mockStore{}, &mockQueue{}, nil)

	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
