// Package handler contains HTTP request handlers for the explainer
// application. Handlers are glue: parse the request, call a service, write
// the response. Business rules live in internal/service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/code-explainer/internal/model"
)

// ExplainRequest is the JSON body of POST /api/explain.
type ExplainRequest struct {
	Code     string     `json:"code"`
	Language string     `json:"language"`
	Tier     model.Tier `json:"tier"`
}

// ExplainResponse is the JSON reply. ID is empty when the result was not
// persisted (history disabled, history write failed, or the explanation text
// is an errors-as-content message).
type ExplainResponse struct {
	ID          string `json:"id,omitempty"`
	Explanation string `json:"explanation"`
	Model       string `json:"model"`
	DurationMs  int64  `json:"durationMs"`
}

// ExplainHandler handles explanation requests.
type ExplainHandler struct {
	svc    Explainer
	logger *slog.Logger
}

// Explainer is what the handler needs from the service layer. Declaring the
// interface on the consumer side keeps the handler testable with a fake.
type Explainer interface {
	Explain(ctx context.Context, code, language string, tier model.Tier) (*model.Explanation, error)
}

// NewExplainHandler creates a new ExplainHandler.
func NewExplainHandler(svc Explainer, logger *slog.Logger) *ExplainHandler {
	return &ExplainHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleExplain processes one explain action.
//
// HTTP: POST /api/explain
// BODY: {"code": "...", "language": "Python", "tier": "Beginner"}
//
// The call blocks until the one remote request completes or fails — the page
// shows a spinner meanwhile. There is no streaming and no retry.
func (h *ExplainHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid explain request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	start := time.Now()
	exp, err := h.svc.Explain(r.Context(), req.Code, req.Language, req.Tier)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExplainResponse{
		ID:          exp.ID,
		Explanation: exp.Explanation,
		Model:       exp.Model,
		DurationMs:  time.Since(start).Milliseconds(),
	})
}
