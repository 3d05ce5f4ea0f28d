package service

import (
	"context"

	"github.com/garzadist/fieldops/internal/domain/order"
	"github.com/garzadist/fieldops/internal/port/database"
)

// OrderService reads sales orders. Orders are only ever created by the
// outcome recorder; confirmation and fulfillment live elsewhere.
type OrderService struct {
	store database.Store
}

// NewOrderService creates an OrderService.
func NewOrderService(store database.Store) *OrderService {
	return &OrderService{store: store}
}

// Get returns an order by ID.
func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// ListByRestaurant returns a restaurant's orders, newest first.
func (s *OrderService) ListByRestaurant(ctx context.Context, restaurantID string) ([]order.Order, error) {
	return s.store.ListOrdersByRestaurant(ctx, restaurantID)
}
