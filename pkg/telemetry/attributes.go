package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Граф
	AttrGraphNodes    = "graph.nodes"
	AttrGraphEdges    = "graph.edges"
	AttrGraphSourceID = "graph.source_id"
	AttrGraphSinkID   = "graph.sink_id"

	// Симуляция
	AttrScenario       = "simulation.scenario"
	AttrRegion         = "simulation.region"
	AttrMaxFlow        = "simulation.max_flow_vph"
	AttrClearanceHours = "simulation.clearance_hours"
	AttrGridlockRisk   = "simulation.gridlock_risk"
	AttrReversedEdges  = "simulation.reversed_edges"

	// Кэш
	AttrCacheHit = "cache.hit"
	AttrCacheKey = "cache.key"
)

// GraphAttributes возвращает атрибуты графа
func GraphAttributes(nodes, edges int, sourceID, sinkID int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrGraphNodes, nodes),
		attribute.Int(AttrGraphEdges, edges),
		attribute.Int64(AttrGraphSourceID, sourceID),
		attribute.Int64(AttrGraphSinkID, sinkID),
	}
}

// SimulationAttributes возвращает атрибуты симуляции
func SimulationAttributes(scenario, region string, maxFlow, clearanceHours float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrScenario, scenario),
		attribute.String(AttrRegion, region),
		attribute.Float64(AttrMaxFlow, maxFlow),
		attribute.Float64(AttrClearanceHours, clearanceHours),
	}
}

// CacheAttributes возвращает атрибуты обращения к кэшу
func CacheAttributes(key string, hit bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrCacheKey, key),
		attribute.Bool(AttrCacheHit, hit),
	}
}
