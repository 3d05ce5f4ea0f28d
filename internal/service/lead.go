package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/domain/lead"
	"github.com/garzadist/fieldops/internal/port/database"
)

// LeadService handles the sales pipeline.
type LeadService struct {
	store database.Store
}

// NewLeadService creates a LeadService.
func NewLeadService(store database.Store) *LeadService {
	return &LeadService{store: store}
}

// Get returns a lead by ID.
func (s *LeadService) Get(ctx context.Context, id string) (*lead.Lead, error) {
	return s.store.GetLead(ctx, id)
}

// ListByRestaurant returns a restaurant's leads, oldest first.
func (s *LeadService) ListByRestaurant(ctx context.Context, restaurantID string) ([]lead.Lead, error) {
	return s.store.ListLeadsByRestaurant(ctx, restaurantID)
}

// Create opens a lead for a restaurant.
func (s *LeadService) Create(ctx context.Context, req lead.CreateRequest, actorID string) (*lead.Lead, error) {
	if req.RestaurantID == "" {
		return nil, fmt.Errorf("%w: restaurant_id is required", domain.ErrValidation)
	}

	l, err := s.store.CreateLead(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, "created_lead", l.ID, req.Source)
	return l, nil
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status lead.Status, nextAction string, nextActionAt *time.Time, actorID string) error {
	switch status {
	case lead.StatusNew, lead.StatusContacted, lead.StatusNegotiating, lead.StatusWon, lead.StatusLost:
	default:
		return fmt.Errorf("%w: unknown lead status %q", domain.ErrValidation, status)
	}

	if err := s.store.UpdateLeadStatus(ctx, id, status, nextAction, nextActionAt); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, "updated_lead_status", id, string(status))
	return nil
}

func (s *LeadService) logActivity(ctx context.Context, actorID, verb, leadID, detail string) {
	err := s.store.AppendActivity(ctx, &activity.Entry{
		ActorID:    actorID,
		Verb:       verb,
		EntityKind: "lead",
		EntityID:   leadID,
		Detail:     detail,
	})
	if err != nil {
		slog.Error("activity append failed", "verb", verb, "lead_id", leadID, "error", err)
	}
}
