package httpapi

import "net/http"

// CompletePastRuns is the internal sweep endpoint the scheduler hits to flip
// runs whose window has passed to Completed. Guarded by the job token
// middleware, never exposed to end users.
func (h *Handler) CompletePastRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompletePastRuns")
	defer span.End()

	completed, err := h.runService.CompletePastRuns(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "complete past runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "past runs completed", "count", completed)
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"completed": completed})
}
