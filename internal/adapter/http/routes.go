package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	// Scheduler-facing sweep trigger, outside the versioned API.
	r.HandleFunc("/internal/sweep", h.HandleSweep)

	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Tasks
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Get("/tasks/{id}/outcomes", h.ListTaskOutcomes)
		r.Post("/tasks/{id}/outcome", h.RecordOutcome)

		// Notifications (acting user's inbox)
		r.Get("/notifications", h.ListNotifications)
		r.Get("/notifications/unread-count", h.UnreadNotificationCount)
		r.Post("/notifications/{id}/read", h.MarkNotificationRead)
		r.Post("/notifications/read-all", h.MarkAllNotificationsRead)

		// Escalations
		r.Get("/escalations", h.ListEscalations)

		// Restaurants
		r.Get("/restaurants", h.ListRestaurants)
		r.Post("/restaurants", h.CreateRestaurant)
		r.Get("/restaurants/{id}", h.GetRestaurant)
		r.Put("/restaurants/{id}", h.UpdateRestaurant)
		r.Delete("/restaurants/{id}", h.DeleteRestaurant)
		r.Get("/restaurants/{id}/leads", h.ListRestaurantLeads)
		r.Get("/restaurants/{id}/orders", h.ListRestaurantOrders)
		r.Get("/restaurants/{id}/activity", h.ListRestaurantActivity)

		// Leads
		r.Post("/leads", h.CreateLead)
		r.Get("/leads/{id}", h.GetLead)
		r.Put("/leads/{id}/status", h.UpdateLeadStatus)

		// Orders
		r.Get("/orders/{id}", h.GetOrder)

		// Activity log
		r.Get("/activity", h.ListActivity)
	})
}
