// Package main is the entry point for the code explainer server.
//
// main stays minimal: read config, create the logger, ensure the data
// directory exists, start the server. All actual logic lives in the internal
// packages, which keeps the components testable without running main.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/code-explainer/internal/config"
	"github.com/sakif/code-explainer/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Config comes from .env (if present) and the environment. The API key
	// is intentionally not logged anywhere, including here.
	cfg := config.Load()

	// The history database lives under data/ by default; create the
	// directory so a fresh checkout starts without manual setup.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		TemplateDir: cfg.TemplateDir,
		StaticDir:   cfg.StaticDir,
		DBPath:      cfg.DBPath,
		GroqAPIKey:  cfg.GroqAPIKey,
		GroqBaseURL: cfg.GroqBaseURL,
		GroqModel:   cfg.GroqModel,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
