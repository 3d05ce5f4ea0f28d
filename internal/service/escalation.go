package service

import (
	"context"

	"github.com/garzadist/fieldops/internal/domain/escalation"
	"github.com/garzadist/fieldops/internal/port/database"
)

// EscalationService reads escalations. Rows are created by the sweep
// and resolved by the outcome recorder; this surface is read-only.
type EscalationService struct {
	store database.Store
}

// NewEscalationService creates an EscalationService.
func NewEscalationService(store database.Store) *EscalationService {
	return &EscalationService{store: store}
}

// List returns escalations, optionally filtered to one task and to
// open rows only.
func (s *EscalationService) List(ctx context.Context, taskID string, openOnly bool) ([]escalation.Escalation, error) {
	return s.store.ListEscalations(ctx, taskID, openOnly)
}
