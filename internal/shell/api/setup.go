package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sii-nl/buscador/internal/shell/metrics"
)

// =============================================================================
// API Setup
// =============================================================================

// APIConfig holds configuration for the API setup.
type APIConfig struct {
	Search      HandlerConfig
	Metrics     *metrics.Metrics
	MetricsPath string // "" disables the metrics endpoint
	Version     string
	Logger      *slog.Logger
}

// SetupAPI creates the root router: health and readiness checks, the
// OpenAPI document, metrics and the search routes.
func SetupAPI(cfg APIConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	cfg.Search.Logger = cfg.Logger
	cfg.Search.Metrics = cfg.Metrics

	searchHandler := NewHandler(cfg.Search)
	docs := newDocs(cfg.Version, searchHandler.mode, searchHandler.defaultPageSize)

	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(recoveryMiddleware(cfg.Logger))

	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/ready", searchHandler.readyHandler).Methods(http.MethodGet)
	router.HandleFunc("/openapi.json", docs.Handler()).Methods(http.MethodGet)

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		router.Handle(cfg.MetricsPath, cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.PathPrefix("/buscar").Handler(searchHandler.Routes())

	// Router.Use only runs on matched routes; preflights for any path
	// must be answered before mux rejects the method.
	return corsMiddleware(router)
}

// =============================================================================
// Middleware
// =============================================================================

// requestIDMiddleware assigns a request ID, keeping one sent by the client.
// The ID is set on the request too so the search router reuses it.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
			r.Header.Set("X-Request-ID", reqID)
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware recovers from panics and returns a 500 error.
func recoveryMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "path", r.URL.Path)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(ErrorResponse{Detail: http.StatusText(http.StatusInternalServerError)})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware allows browser clients from any origin. Preflight
// requests are answered without reaching the handler.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
}

// readyHandler reports ready once a dataset is loaded. An empty dataset
// is reported as not ready.
func (h *Handler) readyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	n := h.service.Table().Len()
	if n == 0 {
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status:  "not_ready",
			Records: n,
			Checks:  map[string]string{"dataset": "empty"},
		})
		return
	}

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status:  "ready",
		Records: n,
		Checks:  map[string]string{"dataset": "ok"},
	})
}
