package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/garzadist/fieldops/internal/adapter/otel"
	"github.com/garzadist/fieldops/internal/config"
	"github.com/garzadist/fieldops/internal/domain/escalation"
	"github.com/garzadist/fieldops/internal/domain/notification"
	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/domain/user"
	"github.com/garzadist/fieldops/internal/port/cache"
	"github.com/garzadist/fieldops/internal/port/database"
)

const managerCacheKey = "users:role:manager"

// SweepResult is what one sweep tick accomplished.
type SweepResult struct {
	OverdueProcessed  int `json:"overdueTasksProcessed"`
	UpcomingReminders int `json:"upcomingReminders"`
}

// SweepService runs the periodic escalation pass. It has no timer of
// its own; an external scheduler invokes it over HTTP on whatever
// cadence operations wants.
type SweepService struct {
	store         database.Store
	notifications *NotificationService
	cache         cache.Cache
	metrics       *otel.Metrics
	cfg           config.Sweep
	managerTTL    time.Duration
	now           func() time.Time
}

// NewSweepService creates a SweepService. cache and metrics may be nil.
func NewSweepService(store database.Store, notifications *NotificationService, c cache.Cache, metrics *otel.Metrics, cfg config.Sweep, managerTTL time.Duration) *SweepService {
	return &SweepService{
		store:         store,
		notifications: notifications,
		cache:         c,
		metrics:       metrics,
		cfg:           cfg,
		managerTTL:    managerTTL,
		now:           time.Now,
	}
}

// Run executes both sweep phases. The phases are independent: a
// reminder-side failure is logged and absorbed, while an overdue-query
// failure is the one thing that fails the whole sweep.
func (s *SweepService) Run(ctx context.Context) (SweepResult, error) {
	runID := uuid.NewString()
	start := s.now()
	var result SweepResult

	// Plain group on the caller's context: a derived group context
	// would let an overdue-phase failure cancel the reminder phase
	// mid-flight, and the phases must not block each other.
	var g errgroup.Group
	g.Go(func() error {
		n, err := s.escalateOverdue(ctx)
		result.OverdueProcessed = n
		return err
	})
	g.Go(func() error {
		result.UpcomingReminders = s.remindUpcoming(ctx)
		return nil
	})
	err := g.Wait()

	if s.metrics != nil {
		s.metrics.SweepDuration.Record(ctx, s.now().Sub(start).Seconds())
	}
	if err != nil {
		slog.Error("sweep failed", "sweep_id", runID, "error", err)
		return SweepResult{}, err
	}
	slog.Info("sweep complete",
		"sweep_id", runID,
		"overdue_processed", result.OverdueProcessed,
		"upcoming_reminders", result.UpcomingReminders,
		"elapsed", s.now().Sub(start))
	return result, nil
}

// escalateOverdue fans each overdue task out to every manager. The
// escalation table's (task_id, escalated_to) key makes the fan-out
// idempotent: repeated ticks insert nothing and notify no one twice.
func (s *SweepService) escalateOverdue(ctx context.Context) (int, error) {
	overdue, err := s.store.ListOverdueTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list overdue tasks: %w", err)
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	managers, err := s.managers(ctx)
	if err != nil {
		slog.Error("manager lookup failed, skipping escalations", "error", err)
		return 0, nil
	}

	for _, ot := range overdue {
		for _, m := range managers {
			s.escalate(ctx, ot, m)
		}
	}
	return len(overdue), nil
}

func (s *SweepService) escalate(ctx context.Context, ot task.OverdueTask, m user.User) {
	reason := fmt.Sprintf("%q (%s, assigned to %s) is %.1f hours overdue",
		ot.Title, ot.RestaurantName, ot.AssigneeName, ot.HoursOverdue)

	created, err := s.store.CreateEscalation(ctx, &escalation.Escalation{
		TaskID:      ot.TaskID,
		EscalatedTo: m.ID,
		Reason:      reason,
	})
	if err != nil {
		slog.Error("escalation insert failed", "task_id", ot.TaskID, "manager_id", m.ID, "error", err)
		return
	}
	if !created {
		return
	}

	if s.metrics != nil {
		s.metrics.EscalationsCreated.Add(ctx, 1)
	}
	if err := s.notifications.Push(ctx, &notification.Notification{
		UserID:  m.ID,
		Title:   "Overdue follow-up: " + ot.Title,
		Message: reason,
		Link:    "/tasks/" + ot.TaskID,
	}); err != nil {
		slog.Error("escalation notification failed", "task_id", ot.TaskID, "manager_id", m.ID, "error", err)
	}
}

// remindUpcoming notifies assignees of lead follow-ups whose due time
// falls inside the pre-due window.
//
// TODO: a task sitting in the window gets one reminder per sweep tick;
// deduping needs a reminded_at marker on tasks.
func (s *SweepService) remindUpcoming(ctx context.Context) int {
	now := s.now()
	from := now.Add(s.cfg.ReminderLead - s.cfg.ReminderWindow/2)
	to := now.Add(s.cfg.ReminderLead + s.cfg.ReminderWindow/2)

	upcoming, err := s.store.ListTasksDueBetween(ctx, task.TypeLeadFollowUp, from, to)
	if err != nil {
		slog.Error("upcoming reminder query failed", "error", err)
		return 0
	}

	sent := 0
	for _, t := range upcoming {
		err := s.notifications.Push(ctx, &notification.Notification{
			UserID:  t.AssigneeID,
			Title:   "Due soon: " + t.Title,
			Message: fmt.Sprintf("Follow-up %q is due at %s.", t.Title, t.DueAt.Format("2006-01-02 15:04")),
			Link:    "/tasks/" + t.ID,
		})
		if err != nil {
			slog.Error("reminder notification failed", "task_id", t.ID, "error", err)
			continue
		}
		if s.metrics != nil {
			s.metrics.RemindersCreated.Add(ctx, 1)
		}
		sent++
	}
	return sent
}

// managers returns the manager-role users, served from the in-process
// cache between sweeps so back-to-back ticks skip the users table.
func (s *SweepService) managers(ctx context.Context) ([]user.User, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, managerCacheKey); err == nil && ok {
			var cached []user.User
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	managers, err := s.store.ListUsersByRole(ctx, user.RoleManager)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(managers); err == nil {
			if err := s.cache.Set(ctx, managerCacheKey, data, s.managerTTL); err != nil {
				slog.Debug("manager cache set failed", "error", err)
			}
		}
	}
	return managers, nil
}
