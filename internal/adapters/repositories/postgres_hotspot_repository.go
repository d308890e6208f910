package repositories

import (
	"context"
	"fmt"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
)

// Pool is the subset of *pgxpool.Pool used by the Postgres catalog.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres-backed implementation of the HotspotCatalog port.
type PostgresHotspotRepository struct {
	Pool Pool
}

func NewPostgresHotspotRepository(pool Pool) *PostgresHotspotRepository {
	return &PostgresHotspotRepository{Pool: pool}
}

// Initialize the Postgres catalog schema.
func InitPostgresSchema(ctx context.Context, pool Pool) error {
	if pool == nil {
		return eris.New("init schema: pool is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS hotspots (
			loc_id TEXT PRIMARY KEY,
			loc_name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			num_species_all_time INTEGER,
			latest_obs_dt TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hotspots_lat_lon ON hotspots(lat, lon)`,
	}

	for i, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return eris.Wrapf(err, "init schema: exec statement #%d", i+1)
		}
	}

	return nil
}

// Return catalog hotspots inside the search window around q.Ref, nearest first.
func (p *PostgresHotspotRepository) NearbyHotspots(
	ctx context.Context,
	q ports.HotspotQuery,
) (_ []domain.RawRecord, err error) {
	defer obs.Time(ctx, "catalog.postgres.NearbyHotspots")(&err)

	if p.Pool == nil {
		return nil, eris.New("postgres hotspot repository: pool is nil")
	}

	box := searchBox(q.Ref, q.DistKm)

	query := `
	SELECT
		loc_id,
		loc_name,
		lat,
		lon,
		COALESCE(num_species_all_time, -1),
		COALESCE(latest_obs_dt, '')
	FROM hotspots
	WHERE lat BETWEEN $1 AND $2
		AND lon BETWEEN $3 AND $4
	ORDER BY ((lat - $5) * (lat - $5) + (lon - $6) * (lon - $6)), loc_id`
	args := []any{box.minLat, box.maxLat, box.minLon, box.maxLon, q.Ref.Lat, q.Ref.Lon}
	if q.MaxResults > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, q.MaxResults)
	}

	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "nearby hotspots: query hotspots table")
	}
	defer rows.Close()

	out := make([]domain.RawRecord, 0, 16)
	for rows.Next() {
		var (
			id, name   string
			lat, lon   float64
			numSpecies int64
			latestObs  string
		)
		if err := rows.Scan(&id, &name, &lat, &lon, &numSpecies, &latestObs); err != nil {
			return nil, eris.Wrap(err, "nearby hotspots: scan row")
		}

		var np *int64
		if numSpecies >= 0 {
			np = &numSpecies
		}
		out = append(out, hotspotRecord(id, name, lat, lon, np, &latestObs))
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "nearby hotspots: row iteration")
	}

	return out, nil
}

// Upsert hotspots in a single transaction.
func (p *PostgresHotspotRepository) SeedHotspots(ctx context.Context, hotspots []domain.Hotspot) error {
	if p.Pool == nil {
		return eris.New("postgres hotspot repository: pool is nil")
	}

	if len(hotspots) == 0 {
		return nil
	}

	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "seed hotspots: begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsert = `
	INSERT INTO hotspots (loc_id, loc_name, lat, lon, num_species_all_time, latest_obs_dt)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (loc_id) DO UPDATE
	SET loc_name = EXCLUDED.loc_name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		num_species_all_time = EXCLUDED.num_species_all_time,
		latest_obs_dt = EXCLUDED.latest_obs_dt`

	for _, h := range hotspots {
		if strings.TrimSpace(h.ID) == "" {
			return eris.New("seed hotspots: empty locId")
		}
		if !h.Point.Known {
			return eris.Errorf("seed hotspots: loc_id=%q has no known position", h.ID)
		}

		if _, err := tx.Exec(ctx, upsert, h.ID, h.Name, h.Point.Lat, h.Point.Lon,
			nullableInt(h.NumSpeciesAllTime), nullableString(h.LatestObsDt)); err != nil {
			return eris.Wrapf(err, "seed hotspots: upsert loc_id=%q", h.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "seed hotspots: commit tx")
	}

	return nil
}
