package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/code-explainer/internal/service"
)

// HistoryHandler exposes the stored explanation history.
type HistoryHandler struct {
	svc    *service.HistoryService
	logger *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleList returns stored explanations, newest first.
//
// HTTP: GET /api/history?limit=20&offset=0
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	// Unparseable values fall back to 0, which the service replaces with its
	// defaults — a junk query string is not worth a 400 here.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	explanations, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list history", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, explanations)
}

// HandleGetByID returns one stored explanation.
//
// HTTP: GET /api/history/{id}
func (h *HistoryHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	exp, err := h.svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exp)
}

// HandleDelete removes one stored explanation.
//
// HTTP: DELETE /api/history/{id}
func (h *HistoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
