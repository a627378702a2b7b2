package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"evacsim/pkg/database"
	"evacsim/pkg/domain"
	"evacsim/pkg/telemetry"
)

// PostgresNetworkRepository PostgreSQL реализация
type PostgresNetworkRepository struct {
	db database.DB
}

// NewPostgresNetworkRepository создаёт новый репозиторий
func NewPostgresNetworkRepository(db database.DB) *PostgresNetworkRepository {
	return &PostgresNetworkRepository{db: db}
}

func (r *PostgresNetworkRepository) ListSegments(ctx context.Context) ([]domain.RoadSegment, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresNetworkRepository.ListSegments")
	defer span.End()

	query := `
		SELECT
			id, source, target, capacity_vph, cost_time,
			road_name, lanes, speed_limit, is_interstate, geom
		FROM road_segments
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list road segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.RoadSegment
	for rows.Next() {
		var (
			seg          domain.RoadSegment
			source       pgtype.Int8
			target       pgtype.Int8
			capacity     pgtype.Float8
			costTime     pgtype.Float8
			roadName     pgtype.Text
			lanes        pgtype.Int4
			speedLimit   pgtype.Float8
			isInterstate pgtype.Bool
			geom         []byte
		)

		err := rows.Scan(
			&seg.ID,
			&source,
			&target,
			&capacity,
			&costTime,
			&roadName,
			&lanes,
			&speedLimit,
			&isInterstate,
			&geom,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan road segment: %w", err)
		}

		if source.Valid {
			seg.Source = &source.Int64
		}
		if target.Valid {
			seg.Target = &target.Int64
		}
		seg.CapacityVPH = capacity.Float64
		seg.CostTime = costTime.Float64
		seg.RoadName = roadName.String
		seg.Lanes = lanes.Int32
		seg.SpeedLimit = speedLimit.Float64
		seg.IsInterstate = isInterstate.Bool
		seg.Geometry = decodeGeometry(geom)

		segments = append(segments, seg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read road segments: %w", err)
	}

	return segments, nil
}

func (r *PostgresNetworkRepository) CountSegments(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresNetworkRepository.CountSegments")
	defer span.End()

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM road_segments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count road segments: %w", err)
	}

	return count, nil
}

// ReplaceSegments атомарно заменяет всю дорожную сеть. Используется сидером
// при загрузке свежего датасета.
func (r *PostgresNetworkRepository) ReplaceSegments(ctx context.Context, segments []domain.RoadSegment) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresNetworkRepository.ReplaceSegments")
	defer span.End()

	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM road_segments`); err != nil {
			return fmt.Errorf("failed to clear road segments: %w", err)
		}

		query := `
			INSERT INTO road_segments (
				id, source, target, capacity_vph, cost_time,
				road_name, lanes, speed_limit, is_interstate, geom
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		for i := range segments {
			seg := &segments[i]

			geom, err := encodeGeometry(seg.Geometry)
			if err != nil {
				return fmt.Errorf("failed to encode geometry for segment %d: %w", seg.ID, err)
			}

			_, err = tx.Exec(ctx, query,
				seg.ID,
				seg.Source,
				seg.Target,
				seg.CapacityVPH,
				seg.CostTime,
				seg.RoadName,
				seg.Lanes,
				seg.SpeedLimit,
				seg.IsInterstate,
				geom,
			)
			if err != nil {
				return fmt.Errorf("failed to insert road segment %d: %w", seg.ID, err)
			}
		}

		return nil
	})
}

func (r *PostgresNetworkRepository) ListMetroAreas(ctx context.Context) ([]domain.MetroArea, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresNetworkRepository.ListMetroAreas")
	defer span.End()

	query := `
		SELECT id, name, mpo_code, state
		FROM metropolitan_areas
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list metro areas: %w", err)
	}
	defer rows.Close()

	var areas []domain.MetroArea
	for rows.Next() {
		var area domain.MetroArea
		if err := rows.Scan(&area.ID, &area.Name, &area.MPOCode, &area.State); err != nil {
			return nil, fmt.Errorf("failed to scan metro area: %w", err)
		}
		areas = append(areas, area)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metro areas: %w", err)
	}

	return areas, nil
}

func (r *PostgresNetworkRepository) UpsertMetroAreas(ctx context.Context, areas []domain.MetroArea) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresNetworkRepository.UpsertMetroAreas")
	defer span.End()

	query := `
		INSERT INTO metropolitan_areas (name, mpo_code, state)
		VALUES ($1, $2, $3)
		ON CONFLICT (mpo_code) DO UPDATE
		SET name = EXCLUDED.name, state = EXCLUDED.state
	`

	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, area := range areas {
			if _, err := tx.Exec(ctx, query, area.Name, area.MPOCode, area.State); err != nil {
				return fmt.Errorf("failed to upsert metro area %q: %w", area.Name, err)
			}
		}
		return nil
	})
}

// decodeGeometry разбирает JSONB колонку geom в список координат.
// Повреждённая геометрия трактуется как отсутствующая.
func decodeGeometry(raw []byte) []domain.Coordinate {
	if len(raw) == 0 {
		return nil
	}

	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil
	}

	coords := make([]domain.Coordinate, len(pairs))
	for i, p := range pairs {
		coords[i] = domain.Coordinate{Lon: p[0], Lat: p[1]}
	}
	return coords
}

func encodeGeometry(coords []domain.Coordinate) ([]byte, error) {
	if len(coords) == 0 {
		return nil, nil
	}

	pairs := make([][2]float64, len(coords))
	for i, c := range coords {
		pairs[i] = [2]float64{c.Lon, c.Lat}
	}
	return json.Marshal(pairs)
}
