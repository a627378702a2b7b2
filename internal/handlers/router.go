package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"evacsim/internal/middleware"
	"evacsim/pkg/config"
	"evacsim/pkg/metrics"
	"evacsim/pkg/ratelimit"
	"evacsim/pkg/telemetry"
)

// NewRouter собирает маршруты и цепочку middleware.
// limiter может быть nil, тогда запросы не лимитируются.
func NewRouter(h *Handler, cfg config.HTTPConfig, limiter ratelimit.Limiter) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mux.MiddlewareFunc(telemetry.HTTPMiddleware))
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	if limiter != nil {
		r.Use(mux.MiddlewareFunc(middleware.RateLimit(limiter)))
	}
	if cfg.CORS.Enabled {
		r.Use(mux.MiddlewareFunc(middleware.CORS(cfg.CORS)))
	}

	// OPTIONS разрешён на API маршрутах, чтобы preflight доходил
	// до CORS middleware
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/simulate", h.Simulate).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/segments", h.Segments).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/msas", h.MetroAreas).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/scenarios", h.Scenarios).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}
