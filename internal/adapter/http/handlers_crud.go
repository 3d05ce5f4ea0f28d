package http

import (
	"net/http"
	"time"

	"github.com/garzadist/fieldops/internal/domain/lead"
	"github.com/garzadist/fieldops/internal/domain/restaurant"
	"github.com/garzadist/fieldops/internal/middleware"
)

// ---------------------------------------------------------------------------
// Restaurants
// ---------------------------------------------------------------------------

func (h *Handlers) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handlers) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handlers) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[restaurant.CreateRequest](w, r)
	if !ok {
		return
	}

	rest, err := h.Restaurants.Create(r.Context(), req, middleware.ActorIDFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "restaurant not created")
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

// UpdateRestaurant saves the full entity; a stale version yields 409.
func (h *Handlers) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, ok := readJSON[restaurant.Restaurant](w, r)
	if !ok {
		return
	}
	rest.ID = urlParam(r, "id")

	if err := h.Restaurants.Update(r.Context(), &rest, middleware.ActorIDFromContext(r.Context())); err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handlers) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Restaurants.Delete(r.Context(), urlParam(r, "id"), middleware.ActorIDFromContext(r.Context())); err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

func (h *Handlers) GetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.Leads.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handlers) ListRestaurantLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.ListByRestaurant(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *Handlers) CreateLead(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[lead.CreateRequest](w, r)
	if !ok {
		return
	}

	l, err := h.Leads.Create(r.Context(), req, middleware.ActorIDFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "lead not created")
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

type leadStatusRequest struct {
	Status       lead.Status `json:"status"`
	NextAction   string      `json:"next_action,omitempty"`
	NextActionAt *time.Time  `json:"next_action_at,omitempty"`
}

func (h *Handlers) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[leadStatusRequest](w, r)
	if !ok {
		return
	}

	err := h.Leads.UpdateStatus(r.Context(), urlParam(r, "id"), req.Status, req.NextAction, req.NextActionAt,
		middleware.ActorIDFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) ListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListByRestaurant(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ---------------------------------------------------------------------------
// Activity log
// ---------------------------------------------------------------------------

func (h *Handlers) ListActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Activity.List(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handlers) ListRestaurantActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Activity.ListByEntity(r.Context(), "restaurant", urlParam(r, "id"), queryInt(r, "limit"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
