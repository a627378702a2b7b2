package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SimulationCache специализированный кэш для результатов симуляции эвакуации
type SimulationCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSimulation кэшированный результат симуляции
type CachedSimulation struct {
	Scenario           string    `json:"scenario"`
	Region             string    `json:"region"`
	MaxThroughputVPH   float64   `json:"max_throughput_vph"`
	ClearanceTimeHours float64   `json:"clearance_time_hours"`
	GridlockRisk       string    `json:"gridlock_risk"`
	GraphNodes         int       `json:"graph_nodes"`
	GraphEdges         int       `json:"graph_edges"`
	ReversedEdges      int       `json:"reversed_edges"`
	Description        string    `json:"description"`
	ComputedAt         time.Time `json:"computed_at"`
}

// NewSimulationCache создаёт кэш результатов симуляции
func NewSimulationCache(cache Cache, defaultTTL time.Duration) *SimulationCache {
	if defaultTTL <= 0 {
		defaultTTL = 1 * time.Hour
	}
	return &SimulationCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат
func (sc *SimulationCache) Get(ctx context.Context, scenario, region string) (*CachedSimulation, bool, error) {
	key := BuildSimulationKey(scenario, region)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSimulation
	if err := json.Unmarshal(data, &result); err != nil {
		// Повреждённый кэш — удаляем, ошибку удаления игнорируем намеренно
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set сохраняет результат в кэш
func (sc *SimulationCache) Set(ctx context.Context, result *CachedSimulation, ttl time.Duration) error {
	if result == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSimulationKey(result.Scenario, result.Region)
	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// InvalidateRegion удаляет кэш всех сценариев для региона
func (sc *SimulationCache) InvalidateRegion(ctx context.Context, region string) error {
	pattern := fmt.Sprintf("simulate:*:%s", normalizeKeyPart(region))
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll удаляет весь кэш симуляций
func (sc *SimulationCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "simulate:*")
}
