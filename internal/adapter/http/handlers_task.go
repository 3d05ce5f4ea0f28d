package http

import (
	"net/http"

	"github.com/garzadist/fieldops/internal/domain/task"
	"github.com/garzadist/fieldops/internal/middleware"
)

// ListTasks returns tasks filtered by ?status=, ?assignee_id=, ?limit=.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	status := task.Status(r.URL.Query().Get("status"))
	assigneeID := r.URL.Query().Get("assignee_id")

	tasks, err := h.Tasks.List(r.Context(), status, assigneeID, queryInt(r, "limit"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tasks.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTask inserts a pending task. Side-effect failures (calendar
// rows, inbox reminder, change feed) never fail the request.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.CreateRequest](w, r)
	if !ok {
		return
	}

	t, out := h.Tasks.Create(r.Context(), req, middleware.ActorIDFromContext(r.Context()))
	if !out.OK() {
		writeDomainError(w, out.Primary, "task not created")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTaskOutcomes returns the audit trail of a task's close-outs.
func (h *Handlers) ListTaskOutcomes(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.Tasks.Outcomes(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomes)
}

type outcomeResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
}

// RecordOutcome closes out a task. The response stays minimal: the
// request succeeded if the outcome row was written, whatever happened
// to the follow-on effects.
func (h *Handlers) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.OutcomeRequest](w, r)
	if !ok {
		return
	}

	orderID, out := h.Outcomes.Record(r.Context(), urlParam(r, "id"), req, middleware.ActorIDFromContext(r.Context()))
	if !out.OK() {
		writeDomainError(w, out.Primary, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, outcomeResponse{Success: true, OrderID: orderID})
}
