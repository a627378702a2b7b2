package handlers

import (
	"net/http"

	"evacsim/pkg/logger"
)

// Health обрабатывает GET /health: процесс жив
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready обрабатывает GET /ready: зависимости доступны.
// Недоступная БД делает сервис не готовым; деградация кэша
// допустима — симуляции просто считаются заново.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logger.Error("readiness check: database unreachable", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"database": "unreachable",
			})
			return
		}
	}

	status := map[string]string{"status": "ok"}
	if h.cacheProbe != nil {
		if err := h.cacheProbe(ctx); err != nil {
			logger.Warn("readiness check: cache degraded", "error", err)
			status["status"] = "degraded"
			status["cache"] = "unavailable"
		}
	}

	respondJSON(w, http.StatusOK, status)
}
