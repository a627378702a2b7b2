package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"evacsim/internal/repository"
	"evacsim/migrations"
	"evacsim/pkg/audit"
	"evacsim/pkg/config"
	"evacsim/pkg/database"
	"evacsim/pkg/domain"
	"evacsim/pkg/logger"
)

// Сидер загружает подготовленный датасет дорожной сети в PostgreSQL.
// Датасет готовится отдельным ETL из выгрузок FDOT/OSM.

type segmentRecord struct {
	ID           int64        `json:"id"`
	Source       *int64       `json:"source"`
	Target       *int64       `json:"target"`
	CapacityVPH  float64      `json:"capacity_vph"`
	CostTime     float64      `json:"cost_time"`
	RoadName     string       `json:"road_name"`
	Lanes        int32        `json:"lanes"`
	SpeedLimit   float64      `json:"speed_limit"`
	IsInterstate bool         `json:"is_interstate"`
	Geometry     [][2]float64 `json:"geometry"`
}

func main() {
	segmentsPath := flag.String("segments", "", "path to road segments JSON")
	msasPath := flag.String("msas", "", "path to metropolitan areas JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("error")
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.InitFromApp(cfg.App.Name+"-seed", cfg.App.Environment, logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: "stdout",
	})

	if *segmentsPath == "" && *msasPath == "" {
		logger.Fatal("nothing to do: pass -segments and/or -msas")
	}

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.RunMigrations(
		ctx,
		db.Pool(),
		&cfg.Database,
		migrations.PostgresMigrations,
		"postgres",
	); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if cfg.Audit.Enabled {
		auditLogger, err := audit.New(&audit.Config{
			Enabled:     cfg.Audit.Enabled,
			Backend:     cfg.Audit.Backend,
			FilePath:    cfg.Audit.FilePath,
			BufferSize:  cfg.Audit.BufferSize,
			FlushPeriod: cfg.Audit.FlushPeriod,
		})
		if err != nil {
			logger.Log.Warn("Failed to create audit logger, continuing without it", "error", err)
		} else {
			audit.SetGlobal(auditLogger)
			defer auditLogger.Close()
		}
	}

	repo := repository.NewPostgresNetworkRepository(db)

	if *segmentsPath != "" {
		segments, err := loadSegments(*segmentsPath)
		if err != nil {
			logger.Fatal("failed to load segments dataset", "error", err)
		}

		if err := repo.ReplaceSegments(ctx, segments); err != nil {
			logger.Fatal("failed to seed road segments", "error", err)
		}
		logger.Info("road segments seeded", "count", len(segments))

		_ = audit.Log(ctx, audit.NewEntry().
			Service(cfg.App.Name+"-seed").
			Method("seed.segments").
			Action(audit.ActionSeed).
			Outcome(audit.OutcomeSuccess).
			Resource("road_segments", *segmentsPath).
			Meta("count", len(segments)).
			Build())
	}

	if *msasPath != "" {
		areas, err := loadMetroAreas(*msasPath)
		if err != nil {
			logger.Fatal("failed to load msas dataset", "error", err)
		}

		if err := repo.UpsertMetroAreas(ctx, areas); err != nil {
			logger.Fatal("failed to seed metro areas", "error", err)
		}
		logger.Info("metro areas seeded", "count", len(areas))
	}

	count, err := repo.CountSegments(ctx)
	if err == nil {
		logger.Info("seeding complete", "total_segments", count)
	}
}

func loadSegments(path string) ([]domain.RoadSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []segmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	segments := make([]domain.RoadSegment, 0, len(records))
	for _, rec := range records {
		geometry := make([]domain.Coordinate, len(rec.Geometry))
		for i, p := range rec.Geometry {
			geometry[i] = domain.Coordinate{Lon: p[0], Lat: p[1]}
		}

		segments = append(segments, domain.RoadSegment{
			ID:           rec.ID,
			Source:       rec.Source,
			Target:       rec.Target,
			CapacityVPH:  rec.CapacityVPH,
			CostTime:     rec.CostTime,
			RoadName:     rec.RoadName,
			Lanes:        rec.Lanes,
			SpeedLimit:   rec.SpeedLimit,
			IsInterstate: rec.IsInterstate,
			Geometry:     geometry,
		})
	}

	return segments, nil
}

func loadMetroAreas(path string) ([]domain.MetroArea, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var areas []domain.MetroArea
	if err := json.Unmarshal(data, &areas); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return areas, nil
}
