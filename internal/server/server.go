// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the database, the Groq
// client, the services, and the handlers get wired together. main.go stays
// minimal and every other package receives its dependencies instead of
// reaching for globals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/code-explainer/internal/groq"
	"github.com/sakif/code-explainer/internal/handler"
	"github.com/sakif/code-explainer/internal/middleware"
	sqliteRepo "github.com/sakif/code-explainer/internal/repository/sqlite"
	"github.com/sakif/code-explainer/internal/service"
)

// Config holds server configuration, assembled in main from the environment.
type Config struct {
	Port        string
	TemplateDir string
	StaticDir   string
	DBPath      string
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
}

// Server owns the router and the resources that must be released on
// shutdown (currently just the history database).
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency chain:
// sqlite.DB → services → handlers → routes.
//
// A missing GROQ_API_KEY is not fatal. The server starts, the page loads,
// and every explain attempt gets a clear "no API key configured" error
// until the operator supplies one and restarts.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, handlers, and URL patterns.
//
// ROUTE STRUCTURE:
//
//	GET    /                    → explainer page (HTML)
//	GET    /static/*            → static assets
//	GET    /api/health          → liveness + explainer readiness (JSON)
//	GET    /api/samples         → the three fixed sample snippets (JSON)
//	GET    /api/samples/{id}    → one sample snippet (JSON)
//	POST   /api/explain         → explain a snippet (JSON)
//	GET    /api/history         → list stored explanations (JSON)
//	GET    /api/history/{id}    → one stored explanation (JSON)
//	DELETE /api/history/{id}    → delete a stored explanation
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Static assets
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Page
	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandlePage)

	// Groq client — nil (explainer disabled) when no credential is set.
	var completer service.Completer
	if s.config.GroqAPIKey != "" {
		opts := []groq.Option{}
		if s.config.GroqBaseURL != "" {
			opts = append(opts, groq.WithBaseURL(s.config.GroqBaseURL))
		}
		if s.config.GroqModel != "" {
			opts = append(opts, groq.WithModel(s.config.GroqModel))
		}
		client, err := groq.New(s.config.GroqAPIKey, opts...)
		if err != nil {
			return fmt.Errorf("creating groq client: %w", err)
		}
		completer = client
	} else {
		s.logger.Warn("GROQ_API_KEY not set — explanations are disabled until configured")
	}

	explainService := service.NewExplainService(completer, s.db, s.logger)
	historyService := service.NewHistoryService(s.db, s.logger)

	explainHandler := handler.NewExplainHandler(explainService, s.logger)
	historyHandler := handler.NewHistoryHandler(historyService, s.logger)
	samplesHandler := handler.NewSamplesHandler(s.logger)
	healthHandler := handler.NewHealthHandler(explainService.Ready)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)
		r.Get("/samples", samplesHandler.HandleList)
		r.Get("/samples/{id}", samplesHandler.HandleGet)
		r.Post("/explain", explainHandler.HandleExplain)
		r.Get("/history", historyHandler.HandleList)
		r.Get("/history/{id}", historyHandler.HandleGetByID)
		r.Delete("/history/{id}", historyHandler.HandleDelete)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds
// to drain (an explain call can legitimately take a while), close the
// database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.router,
		// WriteTimeout has headroom for the blocking upstream call; the groq
		// client's own 60s timeout fires first.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("url", fmt.Sprintf("http://localhost:%s", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
