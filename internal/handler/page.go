package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/sakif/code-explainer/internal/model"
)

// PageHandler serves the explainer page. Templates are parsed once at
// startup and reused — parsing per request would be pure waste.
//
// base.html defines the page skeleton with a {{template "content" .}}
// placeholder; explainer.html fills it via {{define "content"}}. This is
// Go's template composition model.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewPageHandler parses the HTML templates and creates a PageHandler.
func NewPageHandler(templateDir string, logger *slog.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(templateDir, "base.html"),
		filepath.Join(templateDir, "explainer.html"),
	)
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// HandlePage renders the explainer page.
//
// HTTP: GET /
//
// The closed enumerations (languages, tiers) and the sample list are passed
// into the template so the selectors are rendered from the same source of
// truth the server validates against.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":     "AI Code Explainer",
		"Languages": model.Languages,
		"Tiers":     model.Tiers,
		"Samples":   model.Samples,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
