package http

import (
	"github.com/garzadist/fieldops/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Tasks         *service.TaskService
	Outcomes      *service.OutcomeService
	Sweep         *service.SweepService
	Notifications *service.NotificationService
	Escalations   *service.EscalationService
	Restaurants   *service.RestaurantService
	Leads         *service.LeadService
	Orders        *service.OrderService
	Activity      *service.ActivityService
}
