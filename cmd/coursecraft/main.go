// Package main is the entry point for the CourseCraft theme service.
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

	"coursecraft/internal/cache"
	"coursecraft/internal/config"
	"coursecraft/internal/database"
	"coursecraft/internal/editor"
	"coursecraft/internal/handlers"
	"coursecraft/internal/router"
	"coursecraft/internal/store"
)

func main() {
	// Structured logger — outputs text with debug level for development.
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

	// Connect to Valkey (optional — the service runs without the catalogue
	// cache and cross-instance save lock if it is unreachable).
	var catalogueCache *cache.CatalogueCache
	var saveLock editor.SaveLocker
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey not available — catalogue cache and save lock disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		catalogueCache = cache.NewCatalogueCache(valkeyClient, cache.DefaultCatalogueTTL)
		saveLock = cache.NewSaveLock(valkeyClient, cache.DefaultSaveLockTTL)
	}

	// Initialize data stores.
	themeStore := store.NewThemeStore(db)
	presetStore := store.NewPresetStore(db)
	courseStore := store.NewCourseStore(db)

	// Create the handler group with its dependencies.
	api := handlers.NewAPI(themeStore, presetStore, courseStore, catalogueCache, saveLock)

	// Set up the Chi router with all middleware and routes.
	r := router.New(api)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
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
