package handlers

import (
	_ "embed"
	"net/http"
)

// Каталог штормовых сценариев статический: он меняется только
// вместе с релизом, поэтому вшит в бинарь.
//
//go:embed scenarios.json
var scenariosJSON []byte

// Scenarios обрабатывает GET /api/scenarios
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(scenariosJSON)
}
