// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the VibeDev API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibedev/internal/ai"
	"vibedev/internal/cache"
	"vibedev/internal/config"
	"vibedev/internal/database"
	"vibedev/internal/engagement"
	"vibedev/internal/handlers"
	"vibedev/internal/router"
	"vibedev/internal/session"
	"vibedev/internal/storage"
	"vibedev/internal/store"
)

func main() {
	// Structured logger. JSON would suit production; text reads better
	// in development and the collector handles both.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + reference cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are HTTPS-only outside development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	refCache := cache.NewRefCache(valkeyClient, cache.DefaultRefTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	projectStore := store.NewProjectStore(db)
	postStore := store.NewPostStore(db)
	tagStore := store.NewTagStore(db)
	commentStore := store.NewCommentStore(db)
	likeStore := store.NewLikeStore(db)
	viewStore := store.NewViewStore(db)
	eventStore := store.NewEventStore(db)
	statsStore := store.NewStatsStore(db)

	// Engagement service over the row-level stores.
	engagementSvc := engagement.New(likeStore, viewStore, projectStore, postStore, statsStore, logger)

	// Connect to S3-compatible object storage (optional; the app runs without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:     handlers.NewAuth(userStore, sessionStore),
		Projects: handlers.NewProjects(projectStore, likeStore, viewStore, commentStore, engagementSvc, refCache),
		Posts:    handlers.NewPosts(postStore, tagStore, likeStore, viewStore, commentStore, engagementSvc),
		Comments: handlers.NewComments(commentStore, projectStore, postStore),
		Profiles: handlers.NewProfiles(userStore, projectStore, postStore, engagementSvc),
		Events:   handlers.NewEvents(eventStore),
		Admin:    handlers.NewAdmin(userStore, projectStore, postStore, commentStore, aiRegistry),
		Assist:   handlers.NewAssist(projectStore, engagementSvc, aiRegistry),
		Uploads:  handlers.NewUploads(storageClient),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, secureCookies, h)

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate the assist endpoints that wait on
	// LLM responses (typically 10-30s, up to 60s for long prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
