// Package gcal mirrors task due windows into a shared Google Calendar.
// The mirror is optional: the service runs without it when no
// credentials are configured.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/garzadist/fieldops/internal/config"
	"github.com/garzadist/fieldops/internal/domain/calendar"
)

// taskIDProperty is the private extended property that links a mirrored
// event back to its task, so retries never create duplicate events.
const taskIDProperty = "fieldops_task_id"

// Mirror implements calendarmirror.Mirror against the Google Calendar API.
type Mirror struct {
	srv        *gcalendar.Service
	calendarID string
}

// New builds a calendar mirror from service-account credentials. Returns
// (nil, nil) when the mirror is not configured.
func New(ctx context.Context, cfg config.GCal) (*Mirror, error) {
	if cfg.CredentialsFile == "" || cfg.CalendarID == "" {
		return nil, nil
	}

	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read calendar credentials: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(creds, gcalendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse calendar credentials: %w", err)
	}

	srv, err := gcalendar.NewService(ctx, option.WithTokenSource(jwt.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}

	return &Mirror{srv: srv, calendarID: cfg.CalendarID}, nil
}

// Name identifies the mirror in side-effect reports.
func (m *Mirror) Name() string { return "google-calendar" }

// CreateEvent inserts the event unless one already exists for the task.
func (m *Mirror) CreateEvent(ctx context.Context, e calendar.Event) error {
	existing, err := m.srv.Events.List(m.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, e.TaskID)).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("search calendar events: %w", err)
	}
	if len(existing.Items) > 0 {
		return nil
	}

	_, err = m.srv.Events.Insert(m.calendarID, &gcalendar.Event{
		Summary:     e.Title,
		Description: e.Description,
		Start:       &gcalendar.EventDateTime{DateTime: e.StartsAt.Format(time.RFC3339)},
		End:         &gcalendar.EventDateTime{DateTime: e.EndsAt.Format(time.RFC3339)},
		ExtendedProperties: &gcalendar.EventExtendedProperties{
			Private: map[string]string{taskIDProperty: e.TaskID},
		},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}
