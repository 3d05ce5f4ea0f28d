package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garzadist/fieldops/internal/domain"
	"github.com/garzadist/fieldops/internal/domain/activity"
	"github.com/garzadist/fieldops/internal/domain/restaurant"
	"github.com/garzadist/fieldops/internal/port/database"
)

// RestaurantService handles restaurant CRUD and its activity trail.
type RestaurantService struct {
	store database.Store
}

// NewRestaurantService creates a RestaurantService.
func NewRestaurantService(store database.Store) *RestaurantService {
	return &RestaurantService{store: store}
}

// List returns all restaurants.
func (s *RestaurantService) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

// Get returns a restaurant by ID.
func (s *RestaurantService) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return s.store.GetRestaurant(ctx, id)
}

// Create registers a restaurant.
func (s *RestaurantService) Create(ctx context.Context, req restaurant.CreateRequest, actorID string) (*restaurant.Restaurant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	r, err := s.store.CreateRestaurant(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, "created_restaurant", r.ID, r.Name)
	return r, nil
}

// Update saves a restaurant, enforcing optimistic versioning: a stale
// Version surfaces as ErrConflict.
func (s *RestaurantService) Update(ctx context.Context, r *restaurant.Restaurant, actorID string) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	if err := s.store.UpdateRestaurant(ctx, r); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, "updated_restaurant", r.ID, r.Name)
	return nil
}

// Delete removes a restaurant.
func (s *RestaurantService) Delete(ctx context.Context, id, actorID string) error {
	if err := s.store.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, "deleted_restaurant", id, "")
	return nil
}

func (s *RestaurantService) logActivity(ctx context.Context, actorID, verb, restaurantID, detail string) {
	err := s.store.AppendActivity(ctx, &activity.Entry{
		ActorID:    actorID,
		Verb:       verb,
		EntityKind: "restaurant",
		EntityID:   restaurantID,
		Detail:     detail,
	})
	if err != nil {
		slog.Error("activity append failed", "verb", verb, "restaurant_id", restaurantID, "error", err)
	}
}
