package handler

import (
	"net/http"
)

// HealthResponse reports service liveness plus whether the explainer has a
// credential. The page reads explainerReady to disable the Explain button
// (and show a setup hint) before the user wastes a paste.
type HealthResponse struct {
	Status         string `json:"status"`
	ExplainerReady bool   `json:"explainerReady"`
}

// HealthHandler answers GET /api/health.
type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler creates a HealthHandler. ready is queried per request so
// the answer stays honest if wiring ever becomes dynamic.
func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// HandleHealth reports service status.
//
// HTTP: GET /api/health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		ExplainerReady: h.ready(),
	})
}
