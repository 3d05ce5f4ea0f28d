package http

import (
	"net/http"

	"github.com/garzadist/fieldops/internal/middleware"
)

// ListNotifications returns the acting user's inbox, unread first.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.ActorIDFromContext(r.Context())
	if !requireField(w, userID, "X-User-ID header") {
		return
	}

	notifications, err := h.Notifications.List(r.Context(), userID, queryInt(r, "limit"))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// UnreadNotificationCount returns the acting user's unread badge count.
func (h *Handlers) UnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.ActorIDFromContext(r.Context())
	if !requireField(w, userID, "X-User-ID header") {
		return
	}

	count, err := h.Notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkNotificationRead flips one of the acting user's notifications.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.ActorIDFromContext(r.Context())
	if !requireField(w, userID, "X-User-ID header") {
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), urlParam(r, "id"), userID); err != nil {
		writeDomainError(w, err, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MarkAllNotificationsRead flips every unread notification the acting
// user has.
func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.ActorIDFromContext(r.Context())
	if !requireField(w, userID, "X-User-ID header") {
		return
	}

	updated, err := h.Notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// ListEscalations returns escalations, filtered by ?task_id= and ?open=.
func (h *Handlers) ListEscalations(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	openOnly := r.URL.Query().Get("open") == "true"

	escalations, err := h.Escalations.List(r.Context(), taskID, openOnly)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, escalations)
}
