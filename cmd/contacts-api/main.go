// main is the entry point of the Contacts API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env overrides)
//  2. Initialise the logger
//  3. Open the backing store (flat JSON file or SQLite)
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/contacts-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/contacts-api
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

	"github.com/VictoriaMetrics/metrics"

	"github.com/aanand-mishra/contacts-api/internal/config"
	"github.com/aanand-mishra/contacts-api/internal/http/router"
	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/storage/jsonfile"
	"github.com/aanand-mishra/contacts-api/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting contacts-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── Storage ───────────────────────────────────────────────────────────
	// The store is built once here and handed to every handler; nothing
	// else in the program knows where the collection lives.
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error("failed to close storage",
				slog.String("error", err.Error()))
		}
	}()

	store := storage.New(backend)

	log.Info("storage initialised",
		slog.String("driver", cfg.StorageDriver),
		slog.String("path", cfg.StoragePath))

	server := &http.Server{
		Addr:     cfg.HTTPServer.Addr,
		Handler:  router.New(store, cfg.ExportDir, log, metrics.NewSet()),
		ErrorLog: slog.NewLogLogger(log.Handler(), slog.LevelError),

		// No WriteTimeout: an export streams for as long as the archive
		// takes to produce.
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// ListenAndServe failures are reported back instead of exiting from
	// the goroutine, so the deferred storage close still runs.
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// ── Wait for Shutdown Signal ──────────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		log.Error("server encountered an error",
			slog.String("error", err.Error()))
		return
	case <-done:
	}

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// openBackend builds the storage.Backend selected by cfg.StorageDriver.
// The returned close func is always non-nil.
func openBackend(cfg *config.Config) (storage.Backend, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		b, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		b, err := jsonfile.New(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { return nil }, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
