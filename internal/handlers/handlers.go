package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"evacsim/internal/service"
	"evacsim/pkg/apperror"
	"evacsim/pkg/domain"
	"evacsim/pkg/logger"
)

// EvacuationAPI интерфейс сервисного слоя (для тестов)
type EvacuationAPI interface {
	Simulate(ctx context.Context, scenario domain.Scenario, region string) (*domain.SimulationResult, error)
	Segments(ctx context.Context) (*service.FeatureCollection, error)
	MetroAreas(ctx context.Context) ([]domain.MetroArea, error)
}

// Pinger проверка живости зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обработчики HTTP API
type Handler struct {
	svc             EvacuationAPI
	db              Pinger
	cacheProbe      func(ctx context.Context) error
	defaultScenario string
	defaultRegion   string
	version         string
}

// NewHandler создаёт handler
func NewHandler(svc EvacuationAPI, db Pinger, cacheProbe func(ctx context.Context) error, defaultScenario, defaultRegion, version string) *Handler {
	return &Handler{
		svc:             svc,
		db:              db,
		cacheProbe:      cacheProbe,
		defaultScenario: defaultScenario,
		defaultRegion:   defaultRegion,
		version:         version,
	}
}

// respondJSON сериализует ответ
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError переводит ошибку в HTTP статус и тело {"error": ...}
func respondError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)

	message := err.Error()
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	respondJSON(w, status, map[string]string{"error": message})
}
