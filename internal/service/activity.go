package service

import (
	"context"

	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/port/database"
)

// ActivityService reads the append-only activity log.
type ActivityService struct {
	store database.Store
}

// NewActivityService creates an ActivityService.
func NewActivityService(store database.Store) *ActivityService {
	return &ActivityService{store: store}
}

// List returns the most recent entries across all entities.
func (s *ActivityService) List(ctx context.Context, limit int) ([]activity.Entry, error) {
	return s.store.ListActivity(ctx, limit)
}

// ListByEntity returns recent entries for one entity.
func (s *ActivityService) ListByEntity(ctx context.Context, kind, id string, limit int) ([]activity.Entry, error) {
	return s.store.ListActivityByEntity(ctx, kind, id, limit)
}
