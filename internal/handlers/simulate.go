package handlers

import (
	"net/http"

	"evacsim/pkg/domain"
)

// GraphSize размеры графа в ответе симуляции
type GraphSize struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// SimulateResponse ответ на запрос симуляции
type SimulateResponse struct {
	Scenario           string    `json:"scenario"`
	Region             string    `json:"region"`
	MaxThroughputVPH   float64   `json:"max_throughput_vph"`
	ClearanceTimeHours float64   `json:"clearance_time_hours"`
	GridlockRisk       string    `json:"gridlock_risk"`
	GraphSize          GraphSize `json:"graph_size"`
	ReversedEdges      int       `json:"reversed_edges"`
	Description        string    `json:"description"`
}

// Simulate обрабатывает GET /api/simulate?scenario=&region=
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	raw := q.Get("scenario")
	if raw == "" {
		raw = h.defaultScenario
	}
	// Неизвестный сценарий трактуется как baseline
	scenario := domain.ParseScenario(raw)

	region := q.Get("region")
	if region == "" {
		region = h.defaultRegion
	}

	result, err := h.svc.Simulate(r.Context(), scenario, region)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SimulateResponse{
		Scenario:           result.Scenario.String(),
		Region:             result.Region,
		MaxThroughputVPH:   result.MaxThroughputVPH,
		ClearanceTimeHours: result.ClearanceTimeHours,
		GridlockRisk:       result.GridlockRisk,
		GraphSize: GraphSize{
			Nodes: result.NodeCount,
			Edges: result.EdgeCount,
		},
		ReversedEdges: result.ReversedEdges,
		Description:   result.Description,
	})
}
