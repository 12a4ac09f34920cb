// Package config loads application configuration from the environment.
//
// The one real secret is GROQ_API_KEY. It is read once at startup and held
// in memory only — never logged, never written to disk by this program.
// godotenv lets it live in an untracked .env file during development instead
// of a shell profile.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port        string
	GroqAPIKey  string // empty means the explainer runs in "not configured" mode
	GroqBaseURL string // override for tests / proxies; empty means the Groq default
	GroqModel   string // empty means the client default
	DBPath      string
	TemplateDir string
	StaticDir   string
}

// Load reads configuration from a .env file (if present) and the process
// environment, with environment values taking precedence over .env since
// godotenv never overwrites variables that are already set.
func Load() *Config {
	// A missing .env is the normal case in production; ignore the error.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),
		GroqModel:   os.Getenv("GROQ_MODEL"),
		DBPath:      getEnv("DB_PATH", "data/explainer.db"),
		TemplateDir: getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:   getEnv("STATIC_DIR", "web/static"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
