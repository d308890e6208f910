package repositories

import (
	"context"
	"database/sql"
	"hotspot-finder-service/internal/domain"
	"hotspot-finder-service/internal/platform/obs"
	"hotspot-finder-service/internal/ports"
	"strings"

	"github.com/rotisserie/eris"
)

// SQLite-backed implementation of the HotspotCatalog port.
type SqliteHotspotRepository struct{ DB *sql.DB }

func NewSqliteHotspotRepository(db *sql.DB) *SqliteHotspotRepository {
	return &SqliteHotspotRepository{DB: db}
}

// Return catalog hotspots inside the search window around q.Ref, nearest first.
func (s *SqliteHotspotRepository) NearbyHotspots(
	ctx context.Context,
	q ports.HotspotQuery,
) (_ []domain.RawRecord, err error) {
	defer obs.Time(ctx, "catalog.sqlite.NearbyHotspots")(&err)

	if s.DB == nil {
		return nil, eris.New("sqlite hotspot repository: DB is nil")
	}

	box := searchBox(q.Ref, q.DistKm)

	// Ordering by squared degree offset is only approximate; callers rank by
	// great-circle distance afterwards.
	query := `
	SELECT
		loc_id,
		loc_name,
		lat,
		lon,
		num_species_all_time,
		latest_obs_dt
	FROM hotspots
	WHERE lat BETWEEN ? AND ?
		AND lon BETWEEN ? AND ?
	ORDER BY ((lat - ?) * (lat - ?) + (lon - ?) * (lon - ?)), loc_id
	`
	args := []any{
		box.minLat, box.maxLat, box.minLon, box.maxLon,
		q.Ref.Lat, q.Ref.Lat, q.Ref.Lon, q.Ref.Lon,
	}
	if q.MaxResults > 0 {
		query += " LIMIT ?"
		args = append(args, q.MaxResults)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "nearby hotspots: query hotspots table")
	}
	defer rows.Close()

	out := make([]domain.RawRecord, 0, 16)
	for rows.Next() {
		var (
			id, name   string
			lat, lon   float64
			numSpecies sql.NullInt64
			latestObs  sql.NullString
		)
		if err := rows.Scan(&id, &name, &lat, &lon, &numSpecies, &latestObs); err != nil {
			return nil, eris.Wrap(err, "nearby hotspots: scan row")
		}

		var np *int64
		if numSpecies.Valid {
			np = &numSpecies.Int64
		}
		var lp *string
		if latestObs.Valid {
			lp = &latestObs.String
		}
		out = append(out, hotspotRecord(id, name, lat, lon, np, lp))
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "nearby hotspots: row iteration")
	}

	return out, nil
}

// Insert or replace hotspots in a single transaction.
func (s *SqliteHotspotRepository) SeedHotspots(ctx context.Context, hotspots []domain.Hotspot) error {
	if s.DB == nil {
		return eris.New("sqlite hotspot repository: DB is nil")
	}

	if len(hotspots) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "seed hotspots: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO hotspots (
		loc_id,
		loc_name,
		lat,
		lon,
		num_species_all_time,
		latest_obs_dt
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return eris.Wrap(err, "seed hotspots: prepare insert")
	}
	defer stmt.Close()

	for _, h := range hotspots {
		if strings.TrimSpace(h.ID) == "" {
			return eris.New("seed hotspots: empty locId")
		}
		if !h.Point.Known {
			return eris.Errorf("seed hotspots: loc_id=%q has no known position", h.ID)
		}

		if _, err := stmt.ExecContext(ctx, h.ID, h.Name, h.Point.Lat, h.Point.Lon,
			nullableInt(h.NumSpeciesAllTime), nullableString(h.LatestObsDt)); err != nil {
			return eris.Wrapf(err, "seed hotspots: insert loc_id=%q", h.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "seed hotspots: commit tx")
	}

	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
