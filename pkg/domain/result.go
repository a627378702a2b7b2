package domain

// Уровни риска затора
const (
	RiskCritical = "CRITICAL"
	RiskModerate = "MODERATE"
)

// SimulationResult итог симуляции эвакуации
type SimulationResult struct {
	Scenario           Scenario `json:"scenario"`
	Region             string   `json:"region"`
	MaxThroughputVPH   float64  `json:"max_throughput_vph"`
	ClearanceTimeHours float64  `json:"clearance_time_hours"`
	GridlockRisk       string   `json:"gridlock_risk"`
	NodeCount          int      `json:"node_count"`
	EdgeCount          int      `json:"edge_count"`
	ReversedEdges      int      `json:"reversed_edges"`
	Description        string   `json:"description"`
}

// ClearanceTime оценивает время эвакуации в часах: население,
// делённое на пропускную способность сети. При нулевом потоке
// возвращается консервативный дефолт.
func ClearanceTime(maxFlowVPH, population float64) float64 {
	if maxFlowVPH <= Epsilon {
		return DefaultClearanceHours
	}
	return Round2(population / maxFlowVPH)
}

// GridlockRisk классифицирует риск затора по пропускной способности
func GridlockRisk(maxFlowVPH float64) string {
	if maxFlowVPH < CriticalFlowThreshold {
		return RiskCritical
	}
	return RiskModerate
}
