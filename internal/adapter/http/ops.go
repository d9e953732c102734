package httpadapter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mesa-budget/internal/core/port"
)

// handleReset runs the daily and the monthly reset out of cycle and returns
// both sweep reports.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.ManualReset(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("manual reset", "requested_by", r.RemoteAddr)
	out := make([]sweepResponse, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toSweepResponse(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSweep triggers one periodic job by name.
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	var run func(context.Context) (port.SweepReport, error)
	switch chi.URLParam(r, "job") {
	case port.JobDailyReset:
		run = h.svc.ResetDaily
	case port.JobMonthlyReset:
		run = h.svc.ResetMonthly
	case port.JobDayparting:
		run = h.svc.DaypartingSweep
	case port.JobBudgetRecheck:
		run = h.svc.BudgetRecheckSweep
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown job"})
		return
	}
	report, err := run(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSweepResponse(report))
}

func (h *Handler) handleReconcileCampaign(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, h.svc.ReconcileCampaign)
}

func (h *Handler) handleReconcileBrand(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, h.svc.ReconcileBrand)
}

// reconcile parses the {id} path parameter and the optional repair query
// flag, then compares the entity's counters with the ledger.
func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request, run func(context.Context, uuid.UUID, bool) (*port.Reconciliation, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id", Field: "id"})
		return
	}
	repair := false
	if v := r.URL.Query().Get("repair"); v != "" {
		if repair, err = strconv.ParseBool(v); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid repair flag", Field: "repair"})
			return
		}
	}
	rec, err := run(r.Context(), id, repair)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReconcileResponse(rec))
}
