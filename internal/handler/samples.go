package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/code-explainer/internal/model"
)

// SamplesHandler serves the fixed sample snippets behind the page's
// sample buttons. Keeping the literals server-side means the page, the API,
// and the tests all read the same three strings.
type SamplesHandler struct {
	logger *slog.Logger
}

// NewSamplesHandler creates a new SamplesHandler.
func NewSamplesHandler(logger *slog.Logger) *SamplesHandler {
	return &SamplesHandler{logger: logger}
}

// HandleList returns all sample snippets.
//
// HTTP: GET /api/samples
func (h *SamplesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Samples)
}

// HandleGet returns one sample snippet by ID.
//
// HTTP: GET /api/samples/{id}
func (h *SamplesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sample := model.SampleByID(id)
	if sample == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "sample not found with id " + id,
		})
		return
	}
	writeJSON(w, http.StatusOK, sample)
}
