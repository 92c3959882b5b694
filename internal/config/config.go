// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Env names the deployment environment and selects the feature flags.
	Env string

	// JWTSecret signs session tokens. Required.
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RedisAddr enables the Redis generation quota. Empty means the quota is
	// counted from the generations table instead.
	RedisAddr            string
	RedisPassword        string
	DailyGenerationLimit int

	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool

	Features FeatureFlags
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"LOG_LEVEL":              "info",
	"CORS_ORIGINS":           "http://localhost:5173",
	"APP_ENV":                EnvLocal,
	"SESSION_TTL":            "168h",
	"COOKIE_SECURE":          false,
	"MAX_BODY_BYTES":         1 << 20,
	"DAILY_GENERATION_LIMIT": 10,
	"AI_BASE_URL":            "https://openrouter.ai/api/v1",
	"AI_MODEL":               "openai/gpt-4o-mini",
	"AI_TIMEOUT":             "60s",
	"MIGRATE_ON_START":       false,
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	cfg := Config{
		Port:                 v.GetString("PORT"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSOrigins:          splitCSV(v.GetString("CORS_ORIGINS")),
		Env:                  strings.ToLower(v.GetString("APP_ENV")),
		JWTSecret:            v.GetString("JWT_SECRET"),
		SessionTTL:           v.GetDuration("SESSION_TTL"),
		CookieSecure:         v.GetBool("COOKIE_SECURE"),
		MaxBodyBytes:         v.GetInt64("MAX_BODY_BYTES"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		DailyGenerationLimit: v.GetInt("DAILY_GENERATION_LIMIT"),
		AIBaseURL:            v.GetString("AI_BASE_URL"),
		AIAPIKey:             v.GetString("AI_API_KEY"),
		AIModel:              v.GetString("AI_MODEL"),
		AITimeout:            v.GetDuration("AI_TIMEOUT"),
		MigrateOnStart:       v.GetBool("MIGRATE_ON_START"),
	}
	cfg.Features = resolveFeatures(v, cfg.Env)

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.DailyGenerationLimit < 1 {
		return Config{}, fmt.Errorf("DAILY_GENERATION_LIMIT must be at least 1, got %d", cfg.DailyGenerationLimit)
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
