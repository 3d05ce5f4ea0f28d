// Package calendarmirror defines the port for mirroring task due
// windows to an external calendar.
package calendarmirror

import (
	"context"

	"github.com/garzadist/fieldops/internal/domain/calendar"
)

// Mirror pushes calendar events to an external calendar system.
// Implementations are best-effort collaborators: callers log failures
// and move on.
type Mirror interface {
	// Name identifies the mirror in logs.
	Name() string
	// CreateEvent inserts the event in the external calendar.
	CreateEvent(ctx context.Context, e calendar.Event) error
}
