package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mlafefon/split-trip/internal/config"
	"github.com/mlafefon/split-trip/internal/middleware"
	"github.com/mlafefon/split-trip/internal/rates"
	"github.com/mlafefon/split-trip/internal/server"
	"github.com/mlafefon/split-trip/internal/service"
	"github.com/mlafefon/split-trip/internal/storage/sqlite"
	"github.com/mlafefon/split-trip/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	provider := rates.NewClient(cfg.RatesBaseURL, &http.Client{Timeout: cfg.RatesTimeout})

	srv := server.New(
		service.NewTripService(store),
		service.NewExpenseService(store, provider),
		service.NewReportService(store),
		provider,
	)

	handler := middleware.Logging(middleware.CORS(cfg.AllowedOrigin)(srv.Router()))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
