// Package server assembles the HTTP handler: Connect services, interceptors,
// metrics and health endpoints.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/peopleevents/internal/api"
	"github.com/mmynk/peopleevents/internal/auth"
	"github.com/mmynk/peopleevents/internal/metrics"
	"github.com/mmynk/peopleevents/internal/middleware"
	"github.com/mmynk/peopleevents/internal/service"
	"github.com/mmynk/peopleevents/internal/storage"
)

// Deps are the collaborators the handler is built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	StoreTimeout  time.Duration
	Registry      *prometheus.Registry
	Logger        *slog.Logger
}

// NewHandler returns the root handler serving every RPC plus /metrics and /healthz.
func NewHandler(d Deps) http.Handler {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	m := metrics.New(d.Registry)
	store := metrics.InstrumentStore(d.Store, m)

	interceptors := connect.WithInterceptors(
		m.Interceptor(),
		middleware.RequireAuth(d.JWTManager, api.AuthServiceLoginProcedure),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	authPath, authHandler := api.NewAuthServiceHandler(
		service.NewAuthService(d.Authenticator, d.JWTManager, d.Logger), interceptors)
	mux.Handle(authPath, authHandler)

	peoplePath, peopleHandler := api.NewPeopleServiceHandler(
		service.NewPeopleService(store, d.StoreTimeout), interceptors)
	mux.Handle(peoplePath, peopleHandler)

	eventsPath, eventsHandler := api.NewEventServiceHandler(
		service.NewEventService(store, d.StoreTimeout), interceptors)
	mux.Handle(eventsPath, eventsHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return loggingMiddleware(corsMiddleware(mux))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
