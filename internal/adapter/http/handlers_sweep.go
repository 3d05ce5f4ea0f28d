package http

import (
	"net/http"
)

type sweepResponse struct {
	Success           bool `json:"success"`
	OverdueProcessed  int  `json:"overdueTasksProcessed"`
	UpcomingReminders int  `json:"upcomingReminders"`
}

// HandleSweep is the scheduler-facing sweep trigger. Any method other
// than an OPTIONS preflight runs the sweep; the external scheduler is
// not picky about verbs.
func (h *Handlers) HandleSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	result, err := h.Sweep.Run(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{
		Success:           true,
		OverdueProcessed:  result.OverdueProcessed,
		UpcomingReminders: result.UpcomingReminders,
	})
}
