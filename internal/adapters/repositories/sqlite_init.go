package repositories

import (
	"database/sql"
	"hotspot-finder-service/internal/domain"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

const createHotspotsQuery = `
	CREATE TABLE IF NOT EXISTS hotspots (
		loc_id TEXT PRIMARY KEY,
		loc_name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		num_species_all_time INTEGER,
		latest_obs_dt TEXT
	);
	`

const createHotspotsIndexQuery = `
	CREATE INDEX IF NOT EXISTS idx_hotspots_lat_lon
	ON hotspots(lat, lon);
	`

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return eris.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return eris.Wrap(err, "init schema: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		createHotspotsQuery,
		createHotspotsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return eris.Wrapf(err, "init schema: exec statement #%d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "init schema: commit tx")
	}

	return nil
}

// Seed file entry; field names follow the eBird hotspot feed.
type HotspotSeed struct {
	LocID             string  `json:"locId"`
	LocName           string  `json:"locName"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	NumSpeciesAllTime *int    `json:"numSpeciesAllTime"`
	LatestObsDt       string  `json:"latestObsDt"`
}

// ReadSeedFile parses and validates a hotspot seed file.
func ReadSeedFile(jsonPath string) ([]domain.Hotspot, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, eris.Wrapf(err, "seed hotspots: read %q", jsonPath)
	}

	var data []HotspotSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, eris.Wrap(err, "seed hotspots: parse json")
	}

	hotspots := make([]domain.Hotspot, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.LocID)
		if id == "" {
			return nil, eris.Errorf("seed hotspots: item at index %d: locId cannot be empty", i+1)
		}

		p := domain.PointAt(item.Lat, item.Lng)
		if !p.Known {
			return nil, eris.Errorf("seed hotspots: item %q: invalid coordinates (%v, %v)", id, item.Lat, item.Lng)
		}

		hotspots = append(hotspots, domain.Hotspot{
			ID:                id,
			Name:              strings.TrimSpace(item.LocName),
			Point:             p,
			NumSpeciesAllTime: item.NumSpeciesAllTime,
			LatestObsDt:       strings.TrimSpace(item.LatestObsDt),
		})
	}

	return hotspots, nil
}
