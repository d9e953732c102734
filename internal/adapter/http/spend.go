package httpadapter

import (
	"encoding/json"
	"net/http"

	"mesa-budget/internal/core/port"
)

const maxBodyBytes = 1 << 20

// handleSpend ingests one spend event. The body is a port.SpendPayload.
// Malformed JSON and rejected events produce HTTP 400; on success it
// returns the updated campaign and brand snapshot with HTTP 201. An
// event_id seen before returns the current snapshot with HTTP 200.
func (h *Handler) handleSpend(w http.ResponseWriter, r *http.Request) {
	var payload port.SpendPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	event, err := payload.ToEvent()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.Ingest(r.Context(), event)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, toSpendResponse(res))
}
