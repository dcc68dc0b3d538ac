package main

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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/config"
	"github.com/mmynk/peopleevents/internal/server"
	"github.com/mmynk/peopleevents/internal/storage"
	"github.com/mmynk/peopleevents/internal/storage/postgres"
	"github.com/mmynk/peopleevents/internal/storage/sqlite"
	"github.com/mmynk/peopleevents/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	cfg, err := config.Load(getEnv("PE_CONFIG", ""))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.SetupWithLevel(level)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	creds, err := cfg.Credentials()
	if err != nil {
		slog.Error("Failed to load credentials", "error", err)
		os.Exit(1)
	}
	table, err := auth.NewCredentialTable(creds)
	if err != nil {
		slog.Error("Invalid credential table", "error", err)
		os.Exit(1)
	}
	if len(cfg.Users) == 0 {
		slog.Warn("No users configured, using default admin and member accounts")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := server.NewHandler(server.Deps{
		Store:         store,
		Authenticator: table,
		JWTManager:    auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL),
		StoreTimeout:  cfg.StoreTimeout,
		Registry:      registry,
		Logger:        slog.Default(),
	})

	// Wrap with h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.DBDriver, "database", cfg.DBPath)
		return store, nil
	}
}
