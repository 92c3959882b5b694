// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tripplanner/internal/ai"
	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/handler"
	"github.com/pkordes/tripplanner/internal/middleware"
	"github.com/pkordes/tripplanner/internal/quota"
	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/internal/service"
	"github.com/pkordes/tripplanner/migrations"
	"github.com/pkordes/tripplanner/openapi"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(context.Background(), sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Quota ------------------------------------------------------------
	// Without Redis the generation service counts today's generation rows.
	var limiter service.QuotaLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		limiter = quota.NewLimiter(rdb, cfg.DailyGenerationLimit)
		slog.Info("redis quota enabled", "addr", cfg.RedisAddr, "daily_limit", cfg.DailyGenerationLimit)
	}

	// --- Generator --------------------------------------------------------
	var generator ai.Generator = ai.Mock{}
	if !cfg.Features.MockGeneration && cfg.AIAPIKey != "" {
		generator = ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)
	}
	slog.Info("itinerary generator selected", "model", generator.Model())

	// --- Wiring -----------------------------------------------------------
	users := repo.NewUserRepo(pool)
	plans := repo.NewTripPlanRepo(pool)
	generations := repo.NewGenerationRepo(pool)
	preferences := repo.NewPreferenceRepo(pool)

	server := handler.NewServer(handler.Services{
		Plans:       service.NewPlanService(plans, generations),
		Generations: service.NewGenerationService(generator, generations, limiter, cfg.DailyGenerationLimit, logger),
		Preferences: service.NewPreferenceService(preferences),
		Auth:        service.NewAuthService(users, cfg.JWTSecret, cfg.SessionTTL),
		Export:      service.NewExportService(plans),
	}, handler.CookieOptions{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize. CORS sits outside the route groups so preflight
	// requests are answered before session checks run.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes(cfg.Features, openapi.Document))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout has to outlast a generator call.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AITimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
