package service

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"evacsim/internal/engine"
	"evacsim/internal/repository"
	"evacsim/pkg/apperror"
	"evacsim/pkg/audit"
	"evacsim/pkg/cache"
	"evacsim/pkg/config"
	"evacsim/pkg/domain"
	"evacsim/pkg/logger"
	"evacsim/pkg/metrics"
	"evacsim/pkg/telemetry"
)

// EvacuationService оркестрирует симуляции эвакуации: репозиторий,
// кэш, пул воркеров и движок расчёта потока.
type EvacuationService struct {
	repo     repository.NetworkRepository
	cache    cache.Cache
	simCache *cache.SimulationCache
	pool     *ants.Pool
	cfg      config.EvacuationConfig
	pick     engine.PickFunc
}

// NewEvacuationService создаёт новый сервис
func NewEvacuationService(
	repo repository.NetworkRepository,
	c cache.Cache,
	cfg config.EvacuationConfig,
) (*EvacuationService, error) {
	poolSize := cfg.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = 8
	}

	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &EvacuationService{
		repo:     repo,
		cache:    c,
		simCache: cache.NewSimulationCache(c, cfg.SimulationTTL),
		pool:     pool,
		cfg:      cfg,
		pick:     engine.RandomPick,
	}, nil
}

// WithPick подменяет выбор стартовых узлов (для тестов)
func (s *EvacuationService) WithPick(pick engine.PickFunc) *EvacuationService {
	s.pick = pick
	return s
}

// Simulate выполняет симуляцию эвакуации для сценария и региона.
// Результат кэшируется; ошибки кэша не фатальны и лишь логируются.
func (s *EvacuationService) Simulate(ctx context.Context, scenario domain.Scenario, region string) (*domain.SimulationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "EvacuationService.Simulate",
		trace.WithAttributes(
			attribute.String(telemetry.AttrScenario, scenario.String()),
			attribute.String(telemetry.AttrRegion, region),
		),
	)
	defer span.End()

	start := time.Now()

	if region == "" {
		region = s.cfg.DefaultRegion
	}

	// Проверка кэша
	if cached, hit, err := s.simCache.Get(ctx, scenario.String(), region); err != nil {
		logger.Warn("simulation cache read failed", "error", err)
	} else if hit {
		metrics.Get().RecordCacheHit("simulation")
		telemetry.AddEvent(ctx, "cache_hit",
			attribute.String(telemetry.AttrCacheKey, cache.BuildSimulationKey(scenario.String(), region)),
		)
		return fromCached(cached), nil
	}
	metrics.Get().RecordCacheMiss("simulation")

	segments, err := s.repo.ListSegments(ctx)
	if err != nil {
		telemetry.SetError(ctx, err)
		metrics.Get().RecordSimulation(scenario.String(), region, false, time.Since(start), 0, 0)
		return nil, apperror.Wrap(err, apperror.CodeDatabaseError, "failed to load road network")
	}

	// Расчёт потока выполняется в пуле воркеров, чтобы ограничить
	// число параллельных CPU-bound задач
	var (
		result *domain.SimulationResult
		simErr error
	)
	done := make(chan struct{})
	submitErr := s.pool.Submit(func() {
		defer close(done)
		result, simErr = engine.Simulate(ctx, segments, scenario, region, engine.Options{
			Population: s.cfg.PopulationEstimate,
			Pick:       s.pick,
			Logger:     logger.Log,
		})
	})
	if submitErr != nil {
		// Пул закрыт или переполнен — считаем в текущей горутине
		result, simErr = engine.Simulate(ctx, segments, scenario, region, engine.Options{
			Population: s.cfg.PopulationEstimate,
			Pick:       s.pick,
			Logger:     logger.Log,
		})
	} else {
		<-done
	}

	if simErr != nil {
		telemetry.SetError(ctx, simErr)
		metrics.Get().RecordSimulation(scenario.String(), region, false, time.Since(start), 0, 0)
		s.auditSimulation(ctx, scenario, region, start, nil, simErr)
		return nil, simErr
	}

	telemetry.SetAttributes(ctx, telemetry.SimulationAttributes(
		scenario.String(), region, result.MaxThroughputVPH, result.ClearanceTimeHours,
	)...)

	m := metrics.Get()
	m.RecordSimulation(scenario.String(), region, true, time.Since(start), result.MaxThroughputVPH, result.ClearanceTimeHours)
	m.RecordGraphSize("simulate", result.NodeCount, result.EdgeCount)
	m.RecordReversedEdges(region, result.ReversedEdges)

	if err := s.simCache.Set(ctx, toCached(result), s.cfg.SimulationTTL); err != nil {
		logger.Warn("simulation cache write failed", "error", err)
	}

	s.auditSimulation(ctx, scenario, region, start, result, nil)

	return result, nil
}

// auditSimulation пишет аудит-запись о выполненном расчёте
func (s *EvacuationService) auditSimulation(
	ctx context.Context,
	scenario domain.Scenario,
	region string,
	start time.Time,
	result *domain.SimulationResult,
	simErr error,
) {
	b := audit.NewEntry().
		Service("evacsim-svc").
		Method("simulate").
		Action(audit.ActionSimulate).
		Resource("road_network", region).
		Duration(time.Since(start)).
		Meta("scenario", scenario.String())

	if simErr != nil {
		b.Outcome(audit.OutcomeFailure).
			Error(string(apperror.Code(simErr)), simErr.Error())
	} else {
		b.Outcome(audit.OutcomeSuccess).
			Meta("max_throughput_vph", result.MaxThroughputVPH).
			Meta("clearance_time_hours", result.ClearanceTimeHours).
			Meta("gridlock_risk", result.GridlockRisk)
	}

	if err := audit.Log(ctx, b.Build()); err != nil {
		logger.Warn("audit log write failed", "error", err)
	}
}

// MetroAreas возвращает агломерации из хранилища
func (s *EvacuationService) MetroAreas(ctx context.Context) ([]domain.MetroArea, error) {
	ctx, span := telemetry.StartSpan(ctx, "EvacuationService.MetroAreas")
	defer span.End()

	areas, err := s.repo.ListMetroAreas(ctx)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, apperror.Wrap(err, apperror.CodeDatabaseError, "failed to load metro areas")
	}
	return areas, nil
}

// Close освобождает пул воркеров
func (s *EvacuationService) Close() {
	s.pool.Release()
}

func toCached(r *domain.SimulationResult) *cache.CachedSimulation {
	return &cache.CachedSimulation{
		Scenario:           r.Scenario.String(),
		Region:             r.Region,
		MaxThroughputVPH:   r.MaxThroughputVPH,
		ClearanceTimeHours: r.ClearanceTimeHours,
		GridlockRisk:       r.GridlockRisk,
		GraphNodes:         r.NodeCount,
		GraphEdges:         r.EdgeCount,
		ReversedEdges:      r.ReversedEdges,
		Description:        r.Description,
	}
}

func fromCached(c *cache.CachedSimulation) *domain.SimulationResult {
	return &domain.SimulationResult{
		Scenario:           domain.Scenario(c.Scenario),
		Region:             c.Region,
		MaxThroughputVPH:   c.MaxThroughputVPH,
		ClearanceTimeHours: c.ClearanceTimeHours,
		GridlockRisk:       c.GridlockRisk,
		NodeCount:          c.GraphNodes,
		EdgeCount:          c.GraphEdges,
		ReversedEdges:      c.ReversedEdges,
		Description:        c.Description,
	}
}
