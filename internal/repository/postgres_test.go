package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evacsim/pkg/domain"
)

// ============================================================
// MOCK DB ADAPTER
// ============================================================

type pgxMockAdapter struct {
	mock pgxmock.PgxPoolIface
}

func (a *pgxMockAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.mock.Exec(ctx, sql, args...)
}

func (a *pgxMockAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return a.mock.Query(ctx, sql, args...)
}

func (a *pgxMockAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return a.mock.QueryRow(ctx, sql, args...)
}

func (a *pgxMockAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return a.mock.BeginTx(ctx, txOptions)
}

func (a *pgxMockAdapter) Close() {
	a.mock.Close()
}

func (a *pgxMockAdapter) Ping(ctx context.Context) error {
	return a.mock.Ping(ctx)
}

// ============================================================
// HELPER FUNCTIONS
// ============================================================

func setupMockDB(t *testing.T) (pgxmock.PgxPoolIface, *PostgresNetworkRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	adapter := &pgxMockAdapter{mock: mock}
	repo := NewPostgresNetworkRepository(adapter)

	return mock, repo
}

func segmentColumns() []string {
	return []string{
		"id", "source", "target", "capacity_vph", "cost_time",
		"road_name", "lanes", "speed_limit", "is_interstate", "geom",
	}
}

// ============================================================
// LIST SEGMENTS TESTS
// ============================================================

func TestPostgresNetworkRepository_ListSegments_Success(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	// Используем pgtype для корректного сканирования
	source := pgtype.Int8{Int64: 101, Valid: true}
	target := pgtype.Int8{Int64: 102, Valid: true}
	capacity := pgtype.Float8{Float64: 3600, Valid: true}
	costTime := pgtype.Float8{Float64: 12.5, Valid: true}
	roadName := pgtype.Text{String: "I-275 MAJOR HWY", Valid: true}
	lanes := pgtype.Int4{Int32: 4, Valid: true}
	speedLimit := pgtype.Float8{Float64: 70, Valid: true}
	isInterstate := pgtype.Bool{Bool: true, Valid: true}
	geom := []byte(`[[-82.45,28.0],[-82.45,27.9]]`)

	rows := pgxmock.NewRows(segmentColumns()).AddRow(
		int64(1), source, target, capacity, costTime,
		roadName, lanes, speedLimit, isInterstate, geom,
	)

	mock.ExpectQuery(`SELECT .* FROM road_segments`).
		WillReturnRows(rows)

	segments, err := repo.ListSegments(ctx)

	require.NoError(t, err)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, int64(1), seg.ID)
	require.NotNil(t, seg.Source)
	assert.Equal(t, int64(101), *seg.Source)
	require.NotNil(t, seg.Target)
	assert.Equal(t, int64(102), *seg.Target)
	assert.Equal(t, 3600.0, seg.CapacityVPH)
	assert.Equal(t, "I-275 MAJOR HWY", seg.RoadName)
	assert.Equal(t, int32(4), seg.Lanes)
	assert.True(t, seg.IsInterstate)
	require.Len(t, seg.Geometry, 2)
	assert.Equal(t, domain.Coordinate{Lon: -82.45, Lat: 28.0}, seg.Geometry[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_ListSegments_NullFields(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	// NULL значения: сегмент без конечных узлов и геометрии
	rows := pgxmock.NewRows(segmentColumns()).AddRow(
		int64(2),
		pgtype.Int8{Valid: false},
		pgtype.Int8{Valid: false},
		pgtype.Float8{Valid: false},
		pgtype.Float8{Valid: false},
		pgtype.Text{Valid: false},
		pgtype.Int4{Valid: false},
		pgtype.Float8{Valid: false},
		pgtype.Bool{Valid: false},
		nil,
	)

	mock.ExpectQuery(`SELECT .* FROM road_segments`).
		WillReturnRows(rows)

	segments, err := repo.ListSegments(ctx)

	require.NoError(t, err)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Nil(t, seg.Source)
	assert.Nil(t, seg.Target)
	assert.Equal(t, 0.0, seg.CapacityVPH)
	assert.Empty(t, seg.RoadName)
	assert.Nil(t, seg.Geometry)
	assert.False(t, seg.HasEndpoints())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_ListSegments_CorruptGeometry(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	rows := pgxmock.NewRows(segmentColumns()).AddRow(
		int64(3),
		pgtype.Int8{Int64: 1, Valid: true},
		pgtype.Int8{Int64: 2, Valid: true},
		pgtype.Float8{Float64: 1800, Valid: true},
		pgtype.Float8{Float64: 1, Valid: true},
		pgtype.Text{String: "SR 60", Valid: true},
		pgtype.Int4{Int32: 2, Valid: true},
		pgtype.Float8{Float64: 45, Valid: true},
		pgtype.Bool{Bool: false, Valid: true},
		[]byte(`not json`),
	)

	mock.ExpectQuery(`SELECT .* FROM road_segments`).
		WillReturnRows(rows)

	segments, err := repo.ListSegments(ctx)

	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Nil(t, segments[0].Geometry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_ListSegments_QueryError(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT .* FROM road_segments`).
		WillReturnError(errors.New("connection lost"))

	segments, err := repo.ListSegments(ctx)

	assert.Error(t, err)
	assert.Nil(t, segments)
	assert.Contains(t, err.Error(), "failed to list road segments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================
// COUNT SEGMENTS TESTS
// ============================================================

func TestPostgresNetworkRepository_CountSegments(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"count"}).AddRow(int64(42))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM road_segments`).
		WillReturnRows(rows)

	count, err := repo.CountSegments(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_CountSegments_Error(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM road_segments`).
		WillReturnError(errors.New("database error"))

	count, err := repo.CountSegments(ctx)

	assert.Error(t, err)
	assert.Equal(t, int64(0), count)
	assert.Contains(t, err.Error(), "failed to count road segments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================
// REPLACE SEGMENTS TESTS
// ============================================================

func TestPostgresNetworkRepository_ReplaceSegments_Success(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	source := int64(101)
	target := int64(102)
	segments := []domain.RoadSegment{
		{
			ID:          1,
			Source:      &source,
			Target:      &target,
			CapacityVPH: 3600,
			CostTime:    12.5,
			RoadName:    "I-275",
			Lanes:       4,
			SpeedLimit:  70,
			Geometry: []domain.Coordinate{
				{Lon: -82.45, Lat: 28.0},
				{Lon: -82.45, Lat: 27.9},
			},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM road_segments`).
		WillReturnResult(pgxmock.NewResult("DELETE", 10))
	mock.ExpectExec(`INSERT INTO road_segments`).
		WithArgs(
			segments[0].ID,
			segments[0].Source,
			segments[0].Target,
			segments[0].CapacityVPH,
			segments[0].CostTime,
			segments[0].RoadName,
			segments[0].Lanes,
			segments[0].SpeedLimit,
			segments[0].IsInterstate,
			[]byte(`[[-82.45,28],[-82.45,27.9]]`),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.ReplaceSegments(ctx, segments)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_ReplaceSegments_InsertError(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	source := int64(1)
	target := int64(2)
	segments := []domain.RoadSegment{
		{ID: 1, Source: &source, Target: &target, CapacityVPH: 1800},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM road_segments`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO road_segments`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceSegments(ctx, segments)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert road segment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================
// METRO AREA TESTS
// ============================================================

func TestPostgresNetworkRepository_ListMetroAreas(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"id", "name", "mpo_code", "state"}).
		AddRow(int64(1), "Jacksonville", "02", "FL").
		AddRow(int64(2), "Tampa Bay", "07", "FL")

	mock.ExpectQuery(`SELECT .* FROM metropolitan_areas`).
		WillReturnRows(rows)

	areas, err := repo.ListMetroAreas(ctx)

	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Jacksonville", areas[0].Name)
	assert.Equal(t, "07", areas[1].MPOCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_ListMetroAreas_Error(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT .* FROM metropolitan_areas`).
		WillReturnError(errors.New("database error"))

	areas, err := repo.ListMetroAreas(ctx)

	assert.Error(t, err)
	assert.Nil(t, areas)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNetworkRepository_UpsertMetroAreas(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	ctx := context.Background()

	areas := []domain.MetroArea{
		{Name: "Tampa Bay", MPOCode: "07", State: "FL"},
		{Name: "Miami", MPOCode: "06", State: "FL"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metropolitan_areas`).
		WithArgs("Tampa Bay", "07", "FL").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO metropolitan_areas`).
		WithArgs("Miami", "06", "FL").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.UpsertMetroAreas(ctx, areas)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================================
// GEOMETRY CODEC TESTS
// ============================================================

func TestGeometryCodec_RoundTrip(t *testing.T) {
	coords := []domain.Coordinate{
		{Lon: -82.45, Lat: 28.0},
		{Lon: -82.40, Lat: 27.95},
	}

	raw, err := encodeGeometry(coords)
	require.NoError(t, err)

	decoded := decodeGeometry(raw)
	assert.Equal(t, coords, decoded)
}

func TestGeometryCodec_Empty(t *testing.T) {
	raw, err := encodeGeometry(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	assert.Nil(t, decodeGeometry(nil))
	assert.Nil(t, decodeGeometry([]byte(`broken`)))
}
